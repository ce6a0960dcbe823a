package model

import "math"

// BBox is an axis-aligned rectangle in extractor coordinates: origin at the
// top-left of the page, Y increasing downward, expressed as the two corners
// (x0, y0) and (x1, y1).
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// NewBBox creates a bounding box from corner coordinates.
func NewBBox(x0, y0, x1, y1 float64) BBox {
	return BBox{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is inside the bounding box.
func (b BBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Union returns the smallest box covering both boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X0: math.Min(b.X0, other.X0),
		Y0: math.Min(b.Y0, other.Y0),
		X1: math.Max(b.X1, other.X1),
		Y1: math.Max(b.Y1, other.Y1),
	}
}

// IsValid returns true if the box has positive dimensions.
func (b BBox) IsValid() bool {
	return b.X1 > b.X0 && b.Y1 > b.Y0
}
