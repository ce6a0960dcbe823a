// Package source provides span sources: backends that turn a document
// stream into ordered, positioned text spans. A PDF backend and an HTML
// backend are included; any extractor satisfying the Source contract can
// feed the pipeline.
package source

import (
	"context"
	"io"

	"github.com/tsawler/docrank/model"
)

// Document is the output of a span source: an identifier, an optional
// metadata title, and the ordered spans of up to the first MaxPages pages.
type Document struct {
	ID    string
	Title string
	Spans []model.TextSpan
}

// Source yields the spans of one document. Implementations must emit
// spans in natural reading order, 1-indexed by page, each with non-empty
// trimmed text, a valid bounding box, and a positive font size.
type Source interface {
	Extract(ctx context.Context, r io.ReadSeeker) (Document, error)
}

// Span sanitation bounds. Sizes outside the font window are extractor
// artifacts (rotated glyphs, watermarks) rather than readable text.
const (
	MinFontSize = 6.0
	MaxFontSize = 72.0
	MaxPages    = 50
)

// Sanitize enforces the span-source contract on extractor output: spans
// with empty trimmed text, degenerate boxes, out-of-window font sizes, or
// pages past the cap are dropped. Sources call this on their own output;
// it is exported so external extractors can do the same.
func Sanitize(spans []model.TextSpan) []model.TextSpan {
	clean := make([]model.TextSpan, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" || !validText(s.Text) {
			continue
		}
		if s.Page < 1 || s.Page > MaxPages {
			continue
		}
		if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
			continue
		}
		if !s.BBox.IsValid() {
			continue
		}
		clean = append(clean, s)
	}
	return clean
}

func validText(text string) bool {
	for _, r := range text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
