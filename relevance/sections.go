package relevance

import (
	"strings"

	"github.com/tsawler/docrank/headings"
	"github.com/tsawler/docrank/model"
)

// MinRelevance is the score a section must exceed to enter the ranking
// pool. Sections at or below it are dropped.
const MinRelevance = 0.1

// Section is a titled slice of document content between two headings.
type Section struct {
	Title   string
	Page    int
	Content string
}

// RelevantSection is a scored section attributed to its source document.
// Rank is assigned only after final selection.
type RelevantSection struct {
	Document string
	Page     int
	Title    string
	Content  string
	Score    float64
	Rank     int
}

// ExtractorConfig configures section content extraction.
type ExtractorConfig struct {
	// MaxContentLength truncates section content, with an ellipsis marker.
	// Default: 1000.
	MaxContentLength int

	// HeadingProximity is the vertical distance within which a span on the
	// heading's page counts as the heading itself and is skipped.
	// Default: 5.
	HeadingProximity float64
}

// DefaultExtractorConfig returns the default extraction configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxContentLength: 1000,
		HeadingProximity: 5,
	}
}

// Extractor groups document spans into sections bounded by headings.
type Extractor struct {
	config ExtractorConfig
}

// NewExtractor creates an extractor with default configuration.
func NewExtractor() *Extractor {
	return &Extractor{config: DefaultExtractorConfig()}
}

// NewExtractorWithConfig creates an extractor with custom configuration.
func NewExtractorWithConfig(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// Extract produces one section per heading candidate. A section's content
// is every span strictly between its heading and the next one, possibly
// spanning multiple pages. Candidates must be in reading order.
func (e *Extractor) Extract(spans []model.TextSpan, candidates []headings.Candidate) []Section {
	sections := make([]Section, 0, len(candidates))
	for i, c := range candidates {
		var next *headings.Candidate
		if i+1 < len(candidates) {
			next = &candidates[i+1]
		}
		sections = append(sections, Section{
			Title:   c.Span.Text,
			Page:    c.Span.Page,
			Content: e.sectionContent(spans, c, next),
		})
	}
	return sections
}

func (e *Extractor) sectionContent(spans []model.TextSpan, start headings.Candidate, next *headings.Candidate) string {
	startPage := start.Span.Page
	startY := start.Span.Y()

	var parts []string
	for _, span := range spans {
		if span.Page == startPage && abs(span.Y()-startY) < e.config.HeadingProximity {
			continue
		}
		var inSection bool
		if next == nil {
			inSection = (span.Page == startPage && span.Y() > startY) || span.Page > startPage
		} else {
			endPage := next.Span.Page
			endY := next.Span.Y()
			inSection = (span.Page == startPage && span.Y() > startY) ||
				(span.Page > startPage && span.Page < endPage) ||
				(span.Page == endPage && span.Y() < endY)
		}
		if inSection {
			parts = append(parts, span.Text)
		}
	}

	content := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if len(content) > e.config.MaxContentLength {
		content = content[:e.config.MaxContentLength] + "..."
	}
	return content
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
