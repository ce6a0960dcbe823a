// Package model defines the core data types shared by the docrank pipeline:
// positioned text spans, bounding boxes, and per-document font statistics.
package model

// Style flag bits as exposed by span extraction backends. Only bold and
// italic are guaranteed by the span-source contract.
const (
	FlagItalic = 1 << 1
	FlagBold   = 1 << 4
)

// TextStyle holds the style capabilities decoded from an extractor's
// flag bitmask. Decoding happens once, at span construction time.
type TextStyle struct {
	Bold   bool
	Italic bool
}

// DecodeStyle converts a raw style-flag bitmask into a TextStyle.
func DecodeStyle(flags int) TextStyle {
	return TextStyle{
		Bold:   flags&FlagBold != 0,
		Italic: flags&FlagItalic != 0,
	}
}

// TextSpan is a minimal styled, positioned run of text with constant font
// within one document page. Spans are immutable once produced.
type TextSpan struct {
	Text       string
	Page       int // 1-indexed
	BBox       BBox
	FontName   string
	FontSize   float64
	Style      TextStyle
	LineHeight float64
}

// NewSpan constructs a TextSpan, decoding the style bitmask and deriving
// the line height from the bounding box (falling back to the font size
// when the box is degenerate).
func NewSpan(text string, page int, bbox BBox, fontName string, fontSize float64, flags int) TextSpan {
	lineHeight := bbox.Height()
	if lineHeight <= 0 {
		lineHeight = fontSize
	}
	return TextSpan{
		Text:       text,
		Page:       page,
		BBox:       bbox,
		FontName:   fontName,
		FontSize:   fontSize,
		Style:      DecodeStyle(flags),
		LineHeight: lineHeight,
	}
}

// X returns the left edge of the span.
func (s TextSpan) X() float64 { return s.BBox.X0 }

// Y returns the top edge of the span.
func (s TextSpan) Y() float64 { return s.BBox.Y0 }

// Width returns the horizontal extent of the span.
func (s TextSpan) Width() float64 { return s.BBox.Width() }

// Height returns the vertical extent of the span.
func (s TextSpan) Height() float64 { return s.BBox.Height() }
