package headings

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/docrank/model"
)

// UntitledDocument is the title sentinel for documents with no metadata
// title and no usable first-page text.
const UntitledDocument = "Untitled Document"

// OutlineItem is the externally visible, cleaned projection of a heading
// candidate. Items are unique on (level, text, page).
type OutlineItem struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is a document title plus its flat heading outline.
type Outline struct {
	Title string        `json:"title"`
	Items []OutlineItem `json:"outline"`
}

// BuilderConfig configures outline construction.
type BuilderConfig struct {
	// RebalanceHierarchy demotes surplus H1 items to H2 when a document
	// produced many H1s and no H2s via the font-size fallback path.
	// Default: true.
	RebalanceHierarchy bool

	// RebalanceH1Threshold is the H1 count above which rebalancing
	// triggers. Default: 5.
	RebalanceH1Threshold int

	// ShortTextLength is the rune count under which a demotion candidate
	// "looks like" a subsection. Default: 30.
	ShortTextLength int

	// TitlePrefixes are authoring-tool prefixes stripped from titles.
	TitlePrefixes []string

	// TitleSuffixes are file-extension suffixes stripped from titles.
	TitleSuffixes []string
}

// DefaultBuilderConfig returns the default outline configuration.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		RebalanceHierarchy:   true,
		RebalanceH1Threshold: 5,
		ShortTextLength:      30,
		TitlePrefixes:        []string{"Microsoft Word - "},
		TitleSuffixes:        []string{".docx", ".doc", ".pdf", ".rtf", ".txt"},
	}
}

// Builder turns heading candidates into a cleaned, deduplicated outline.
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates an outline builder with default configuration.
func NewBuilder() *Builder {
	return &Builder{config: DefaultBuilderConfig()}
}

// NewBuilderWithConfig creates an outline builder with custom configuration.
func NewBuilderWithConfig(config BuilderConfig) *Builder {
	return &Builder{config: config}
}

var subLevelPattern = regexp.MustCompile(`\d+\.\d+`)

// Build produces the outline for one document. metaTitle is the document's
// metadata title, which may be empty; spans are used for the first-page
// title fallback. Candidates are assumed to be in reading order.
func (b *Builder) Build(metaTitle string, spans []model.TextSpan, candidates []Candidate) Outline {
	type key struct {
		level Level
		text  string
		page  int
	}

	seen := make(map[key]bool)
	items := make([]OutlineItem, 0, len(candidates))

	for _, c := range candidates {
		text := CleanText(c.Span.Text)
		if text == "" {
			continue
		}
		k := key{level: c.Level, text: text, page: c.Span.Page}
		if seen[k] {
			continue
		}
		seen[k] = true
		items = append(items, OutlineItem{Level: c.Level, Text: text, Page: c.Span.Page})
	}

	if b.config.RebalanceHierarchy {
		b.rebalance(items)
	}

	return Outline{
		Title: b.resolveTitle(metaTitle, spans),
		Items: items,
	}
}

// rebalance applies a coarse hierarchy correction: when more than the
// threshold of items are H1 and none are H2, everything after the first H1
// was almost certainly tiered by the font-size fallback, so demote items
// that look like subsections. Numbered top-level headings are left alone.
func (b *Builder) rebalance(items []OutlineItem) {
	h1 := 0
	h2 := 0
	for _, item := range items {
		switch item.Level {
		case Level1:
			h1++
		case Level2:
			h2++
		}
	}
	if h1 <= b.config.RebalanceH1Threshold || h2 != 0 {
		return
	}

	firstSeen := false
	for i := range items {
		if items[i].Level != Level1 {
			continue
		}
		if !firstSeen {
			firstSeen = true
			continue
		}
		if level1Prefix.MatchString(items[i].Text) {
			continue
		}
		if subLevelPattern.MatchString(items[i].Text) ||
			utf8.RuneCountInString(items[i].Text) <= b.config.ShortTextLength {
			items[i].Level = Level2
		}
	}
}

// resolveTitle picks the document title: metadata title if present, else
// the largest-font span on the first page, else the untitled sentinel.
func (b *Builder) resolveTitle(metaTitle string, spans []model.TextSpan) string {
	if title := b.cleanTitle(metaTitle); title != "" {
		return title
	}

	var largest string
	var largestSize float64
	for _, s := range spans {
		if s.Page != 1 {
			continue
		}
		text := strings.TrimSpace(s.Text)
		if utf8.RuneCountInString(text) <= 3 {
			continue
		}
		if s.FontSize > largestSize {
			largestSize = s.FontSize
			largest = text
		}
	}
	if title := b.cleanTitle(largest); title != "" {
		return title
	}

	return UntitledDocument
}

// cleanTitle strips authoring-tool prefixes and file-extension suffixes.
func (b *Builder) cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	for _, prefix := range b.config.TitlePrefixes {
		title = strings.TrimPrefix(title, prefix)
	}
	lower := strings.ToLower(title)
	for _, suffix := range b.config.TitleSuffixes {
		if strings.HasSuffix(lower, suffix) {
			title = title[:len(title)-len(suffix)]
			break
		}
	}
	return strings.TrimSpace(title)
}

// safePunctuation is the set of punctuation retained in heading text.
const safePunctuation = `.,:;!?()[]&'"/+%$#@*-–—`

// CleanText normalizes heading text: NFKC normalization, whitespace
// collapse, removal of characters outside the safe punctuation set, repair
// of the dangling " I" line-break artifact, and removal of a trailing
// punctuation mark. Cleaning an already-clean string is a no-op.
func CleanText(text string) string {
	text = norm.NFKC.String(text)

	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(safePunctuation, r) {
			sb.WriteRune(r)
		}
	}

	text = strings.Join(strings.Fields(sb.String()), " ")

	// Tail repair runs to a fixpoint so cleaning stays idempotent.
	for {
		trimmed := trimTail(text)
		if trimmed == text {
			return text
		}
		text = trimmed
	}
}

// trimTail removes one trailing artifact: a dangling " I" left by PDF
// line breaking, or a single trailing punctuation mark. A run of trailing
// punctuation (e.g. an ellipsis) is left intact.
func trimTail(text string) string {
	if strings.HasSuffix(text, " I") {
		return strings.TrimSpace(text[:len(text)-2])
	}
	if len(text) >= 2 {
		last := text[len(text)-1]
		prev := text[len(text)-2]
		if strings.IndexByte(".:;,", last) >= 0 && strings.IndexByte(".:;,", prev) < 0 {
			return strings.TrimSpace(text[:len(text)-1])
		}
	}
	return text
}

var standaloneNumber = regexp.MustCompile(`^\d+\.$`)

// MergeNumberedSpans merges a standalone section-number span (a bare "1.")
// with the span that follows it on the same line. Some renderers emit the
// number and the heading text as separate spans; merging them lets the
// numbered-heading heuristics see the full text. This encodes a
// renderer-specific line-breaking assumption, so it is an optional
// post-pass rather than a universal rule.
func MergeNumberedSpans(spans []model.TextSpan) []model.TextSpan {
	if len(spans) < 2 {
		return spans
	}

	merged := make([]model.TextSpan, 0, len(spans))
	for i := 0; i < len(spans); i++ {
		span := spans[i]
		if i+1 < len(spans) && standaloneNumber.MatchString(strings.TrimSpace(span.Text)) {
			next := spans[i+1]
			if next.Page == span.Page && sameLine(span, next) && next.X() > span.X() {
				combined := next
				combined.Text = strings.TrimSpace(span.Text) + " " + strings.TrimSpace(next.Text)
				combined.BBox = span.BBox.Union(next.BBox)
				if span.FontSize > combined.FontSize {
					combined.FontSize = span.FontSize
				}
				merged = append(merged, combined)
				i++
				continue
			}
		}
		merged = append(merged, span)
	}
	return merged
}

// sameLine reports whether two spans vertically overlap enough to be on
// the same text line.
func sameLine(a, b model.TextSpan) bool {
	tolerance := a.LineHeight
	if b.LineHeight > tolerance {
		tolerance = b.LineHeight
	}
	if tolerance <= 0 {
		tolerance = a.FontSize
	}
	diff := a.Y() - b.Y()
	if diff < 0 {
		diff = -diff
	}
	return diff < tolerance*0.6
}
