package relevance

import (
	"strings"
	"testing"

	"github.com/tsawler/docrank/headings"
	"github.com/tsawler/docrank/model"
)

func textSpan(text string, page int, y float64) model.TextSpan {
	return model.NewSpan(text, page, model.NewBBox(72, y, 300, y+11), "F", 11, 0)
}

func headingCandidate(text string, page int, y float64) headings.Candidate {
	return headings.Candidate{
		Span: model.NewSpan(text, page, model.NewBBox(72, y, 300, y+16), "F", 16, model.FlagBold),
	}
}

func TestExtractSectionBoundaries(t *testing.T) {
	spans := []model.TextSpan{
		textSpan("preamble before any heading", 1, 50),
		textSpan("first paragraph", 1, 150),
		textSpan("second paragraph", 2, 50),
		textSpan("after next heading", 2, 150),
	}
	candidates := []headings.Candidate{
		headingCandidate("Heading One", 1, 100),
		headingCandidate("Heading Two", 2, 100),
	}

	sections := NewExtractor().Extract(spans, candidates)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	first := sections[0]
	if first.Title != "Heading One" || first.Page != 1 {
		t.Errorf("first section = %+v", first)
	}
	if !strings.Contains(first.Content, "first paragraph") ||
		!strings.Contains(first.Content, "second paragraph") {
		t.Errorf("first section content = %q; must span the page break", first.Content)
	}
	if strings.Contains(first.Content, "preamble") {
		t.Errorf("content above the heading leaked in: %q", first.Content)
	}

	second := sections[1]
	if !strings.Contains(second.Content, "after next heading") {
		t.Errorf("last section content = %q; must run to end of document", second.Content)
	}
	if strings.Contains(second.Content, "first paragraph") {
		t.Errorf("earlier content leaked into last section: %q", second.Content)
	}
}

func TestExtractSkipsHeadingItself(t *testing.T) {
	spans := []model.TextSpan{
		textSpan("Heading One", 1, 100),
		textSpan("near the heading baseline", 1, 103),
		textSpan("body text", 1, 150),
	}
	candidates := []headings.Candidate{headingCandidate("Heading One", 1, 100)}

	sections := NewExtractor().Extract(spans, candidates)
	if strings.Contains(sections[0].Content, "near the heading baseline") {
		t.Errorf("spans within heading proximity must be skipped: %q", sections[0].Content)
	}
	if !strings.Contains(sections[0].Content, "body text") {
		t.Errorf("body text missing: %q", sections[0].Content)
	}
}

func TestExtractTruncatesLongContent(t *testing.T) {
	spans := []model.TextSpan{
		textSpan(strings.Repeat("word ", 400), 1, 150),
	}
	candidates := []headings.Candidate{headingCandidate("Heading", 1, 100)}

	sections := NewExtractor().Extract(spans, candidates)
	content := sections[0].Content
	if len(content) != 1000+len("...") {
		t.Errorf("content length = %d, want %d", len(content), 1000+len("..."))
	}
	if !strings.HasSuffix(content, "...") {
		t.Errorf("truncated content must end with ellipsis marker")
	}
}

func TestExtractNormalizesWhitespace(t *testing.T) {
	spans := []model.TextSpan{
		textSpan("two  spaced\twords", 1, 150),
	}
	candidates := []headings.Candidate{headingCandidate("Heading", 1, 100)}

	sections := NewExtractor().Extract(spans, candidates)
	if sections[0].Content != "two spaced words" {
		t.Errorf("content = %q, want single-spaced", sections[0].Content)
	}
}
