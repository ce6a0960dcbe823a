// Package headings implements heuristic heading detection over styled text
// spans: a prefilter plus weighted feature scoring identifies candidates,
// levels are assigned from numbering structure or font-size tiering, and an
// outline builder produces the cleaned, deduplicated document outline.
package headings

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/docrank/model"
)

// Feature names used in Candidate.Features and Config.Weights.
const (
	FeatureFontSize       = "font_size"
	FeatureBold           = "bold"
	FeatureLeftAligned    = "left_aligned"
	FeatureTopSpacing     = "top_spacing"
	FeaturePatternMatch   = "pattern_match"
	FeatureKeywordMatch   = "keyword_match"
	FeatureCapitalization = "capitalization"
	FeatureLength         = "length"
	FeatureNumbered       = "numbered"
)

// Candidate is a span provisionally classified as a heading, carrying a
// confidence score and the per-feature scores that produced it.
type Candidate struct {
	Span       model.TextSpan
	Confidence float64
	Level      Level
	Features   map[string]float64
}

// Config holds the heuristic tables and thresholds for heading detection.
// All tables are immutable configuration injected at construction, so a
// different vertical can swap keyword sets without touching scoring logic.
type Config struct {
	// MinConfidence is the minimum weighted score to keep a candidate.
	// Default: 0.15.
	MinConfidence float64

	// FontSizeRatio is the minimum size ratio over the body font for a
	// span to pass the prefilter without a high-priority pattern match.
	// Default: 1.1.
	FontSizeRatio float64

	// MaxLength and MaxWords bound heading text in the prefilter.
	// Defaults: 100 characters, 15 words.
	MaxLength int
	MaxWords  int

	// Weights maps feature names to their share of the confidence score.
	// The default table sums to 1.0, which keeps confidence in [0, 1].
	Weights map[string]float64

	// HighPriorityPatterns always pass the prefilter.
	HighPriorityPatterns []*regexp.Regexp

	// Patterns score the pattern_match feature: numbered prefixes,
	// all-caps runs, title-case phrases, roman numerals, letter enumeration.
	Patterns []*regexp.Regexp

	// Keywords are structural heading terms matched against lowercased
	// text; SecondaryKeywords are matched verbatim (second-language set).
	Keywords          []string
	SecondaryKeywords []string

	// Stopwords are excluded from capitalization scoring.
	Stopwords map[string]bool

	// IgnoreTexts are exact lowercase matches rejected outright.
	IgnoreTexts map[string]bool

	// FragmentPrefixes and FragmentSuffixes mark sentence fragments:
	// formatted text starting or ending with one of these is body text,
	// not a heading.
	FragmentPrefixes []string
	FragmentSuffixes []string

	// RejectTexts are exact matches (case sensitive) that are known
	// non-headings despite heading-like formatting.
	RejectTexts map[string]bool
}

// DefaultConfig returns the tuned detection configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0.15,
		FontSizeRatio: 1.1,
		MaxLength:     100,
		MaxWords:      15,
		Weights: map[string]float64{
			FeatureFontSize:       0.20,
			FeatureBold:           0.15,
			FeaturePatternMatch:   0.20,
			FeatureKeywordMatch:   0.15,
			FeatureCapitalization: 0.10,
			FeatureNumbered:       0.15,
			FeatureLeftAligned:    0.03,
			FeatureTopSpacing:     0.02,
		},
		HighPriorityPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\.\s+\w+`),
			regexp.MustCompile(`(?i)^(overview|foundation level|revision history|table of contents|acknowledgements|references)$`),
			regexp.MustCompile(`^\d+\.\d+\s+[A-Za-z]`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`^\d+\.\s+\w`),
			regexp.MustCompile(`^\d+\.\d+\s+\w`),
			regexp.MustCompile(`^\d+\.\d+\.\d+\s+\w`),
			regexp.MustCompile(`^[A-Z][A-Z\s]{2,}$`),
			regexp.MustCompile(`^[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*$`),
			regexp.MustCompile(`^[IVX]+\.?\s+[A-Z]`),
			regexp.MustCompile(`^[A-Z]\.?\s+[A-Z]`),
		},
		Keywords: []string{
			"introduction", "conclusion", "abstract", "summary", "overview",
			"background", "methodology", "results", "discussion", "references",
			"chapter", "section", "appendix", "bibliography", "acknowledgements",
			"table of contents", "revision history", "audience", "career",
			"learning", "objectives", "requirements", "structure", "duration",
			"current", "business", "outcomes", "content", "trademarks",
			"documents", "web sites",
		},
		SecondaryKeywords: []string{
			"はじめに", "序論", "概要", "背景", "方法", "結果", "考察", "結論",
			"参考文献", "付録", "章", "節",
		},
		Stopwords: map[string]bool{
			"the": true, "and": true, "or": true, "but": true, "in": true,
			"on": true, "at": true, "to": true, "for": true, "of": true,
			"with": true, "by": true, "from": true, "up": true, "about": true,
			"into": true, "through": true,
		},
		IgnoreTexts: map[string]bool{
			"page": true, "version": true, "copyright notice": true,
			"date": true, "time": true,
		},
		FragmentPrefixes: []string{"this ", "the ", "in ", "that ", "each ", "all "},
		FragmentSuffixes: []string{" is", " are", " will", " can", " may"},
		RejectTexts: map[string]bool{
			"Days": true, "Syllabus": true, "Identifier": true, "Reference": true,
		},
	}
}

var (
	pureDigitsPattern = regexp.MustCompile(`^\d+$`)
	datePattern       = regexp.MustCompile(`^\d+\s+\w+\s+\d{4}$`)
	numberedPrefix    = regexp.MustCompile(`^\d+\.?\s+`)
	decimalPrefix     = regexp.MustCompile(`^\d+\.\d+\s+`)
)

// Detector detects heading candidates in a document's spans.
type Detector struct {
	config Config
}

// NewDetector creates a heading detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a heading detector with custom configuration.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Detect prefilters and scores every span, returning candidates above the
// confidence threshold with levels assigned, sorted in reading order.
func (d *Detector) Detect(spans []model.TextSpan, stats model.DocumentStats) []Candidate {
	var candidates []Candidate

	for _, span := range spans {
		if !d.isPotentialHeading(span, stats) {
			continue
		}
		candidate := d.score(span, spans, stats)
		if candidate.Confidence > d.config.MinConfidence {
			candidates = append(candidates, candidate)
		}
	}

	AssignLevels(candidates, stats)
	SortReadingOrder(candidates)
	return candidates
}

// isPotentialHeading is the cheap prefilter applied before feature scoring.
func (d *Detector) isPotentialHeading(span model.TextSpan, stats model.DocumentStats) bool {
	text := strings.TrimSpace(span.Text)

	if utf8.RuneCountInString(text) < 3 {
		return false
	}

	if d.config.IgnoreTexts[strings.ToLower(text)] {
		return false
	}

	for _, pattern := range d.config.HighPriorityPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	// Long text is body text.
	if utf8.RuneCountInString(text) > d.config.MaxLength {
		return false
	}

	// Pure numbers, dates, leader dots, and known non-headings.
	if pureDigitsPattern.MatchString(text) ||
		datePattern.MatchString(text) ||
		d.config.RejectTexts[text] ||
		strings.Contains(text, "...........") {
		return false
	}

	// Remaining text needs a significant formatting difference.
	if span.FontSize > stats.BodyFontSize*d.config.FontSizeRatio || span.Style.Bold {
		return !d.looksLikeFragment(text)
	}

	return false
}

// looksLikeFragment rejects formatted text that reads as a sentence
// fragment rather than a heading.
func (d *Detector) looksLikeFragment(text string) bool {
	lower := strings.ToLower(text)
	for _, prefix := range d.config.FragmentPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, suffix := range d.config.FragmentSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return len(strings.Fields(text)) > d.config.MaxWords
}

// score computes the independent feature scores and their weighted sum.
func (d *Detector) score(span model.TextSpan, spans []model.TextSpan, stats model.DocumentStats) Candidate {
	text := strings.TrimSpace(span.Text)

	features := map[string]float64{
		FeatureFontSize:       fontSizeScore(span.FontSize, stats.BodyFontSize),
		FeatureBold:           boolScore(span.Style.Bold),
		FeatureLeftAligned:    leftAlignedScore(span.X()),
		FeatureTopSpacing:     topSpacingScore(span, spans),
		FeaturePatternMatch:   d.patternScore(text),
		FeatureKeywordMatch:   d.keywordScore(text),
		FeatureCapitalization: d.capitalizationScore(text),
		FeatureLength:         lengthScore(text),
		FeatureNumbered:       numberedScore(text),
	}

	var confidence float64
	for name, weight := range d.config.Weights {
		confidence += features[name] * weight
	}

	return Candidate{
		Span:       span,
		Confidence: clamp01(confidence),
		Features:   features,
	}
}

// fontSizeScore rewards spans larger than the body font, capped at double.
func fontSizeScore(size, bodySize float64) float64 {
	if bodySize <= 0 {
		return 0
	}
	ratio := size / bodySize
	if ratio <= 1 {
		return 0
	}
	return clamp01(ratio - 1)
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0
}

// leftAlignedScore favors spans near the left margin.
func leftAlignedScore(x float64) float64 {
	if x < 100 {
		return 1.0
	}
	return 0.5
}

// topSpacingScore normalizes the vertical gap to the nearest span above on
// the same page within 50 horizontal units. A span with nothing above it
// (top of page) scores 1.0; a 20-unit gap or more also scores 1.0.
func topSpacingScore(span model.TextSpan, spans []model.TextSpan) float64 {
	var closest *model.TextSpan
	var closestGap float64

	for i := range spans {
		other := &spans[i]
		if other.Page != span.Page || other.Y() >= span.Y() {
			continue
		}
		if diff := other.X() - span.X(); diff > 50 || diff < -50 {
			continue
		}
		gap := span.Y() - other.Y()
		if closest == nil || gap < closestGap {
			closest = other
			closestGap = gap
		}
	}

	if closest == nil {
		return 1.0
	}

	spacing := span.Y() - (closest.Y() + closest.Height())
	if spacing <= 0 {
		return 0
	}
	return clamp01(spacing / 20.0)
}

func (d *Detector) patternScore(text string) float64 {
	for _, pattern := range d.config.Patterns {
		if pattern.MatchString(text) {
			return 1.0
		}
	}
	return 0
}

func (d *Detector) keywordScore(text string) float64 {
	lower := strings.ToLower(text)
	for _, keyword := range d.config.Keywords {
		if strings.Contains(lower, keyword) {
			return 1.0
		}
	}
	for _, keyword := range d.config.SecondaryKeywords {
		if strings.Contains(text, keyword) {
			return 1.0
		}
	}
	return 0
}

// capitalizationScore: 1.0 for all-caps text longer than 3 runes; for
// multi-word text, the fraction of non-stopword tokens that are
// capitalized; for single words, 0.5 if capitalized.
func (d *Detector) capitalizationScore(text string) float64 {
	if isAllUpper(text) && utf8.RuneCountInString(text) > 3 {
		return 1.0
	}

	words := strings.Fields(text)
	if len(words) > 1 {
		total := 0
		capitalized := 0
		for _, word := range words {
			if d.config.Stopwords[strings.ToLower(word)] {
				continue
			}
			total++
			if firstRuneUpper(word) {
				capitalized++
			}
		}
		if total == 0 {
			return 0
		}
		return float64(capitalized) / float64(total)
	}

	if firstRuneUpper(text) {
		return 0.5
	}
	return 0
}

// lengthScore is a piecewise score favoring short strings.
func lengthScore(text string) float64 {
	switch length := utf8.RuneCountInString(text); {
	case length <= 50:
		return 1.0
	case length <= 100:
		return 0.7
	case length <= 150:
		return 0.3
	default:
		return 0
	}
}

// numberedScore is 1.0 when the text starts with a numeric or
// decimal-numeric prefix followed by whitespace.
func numberedScore(text string) float64 {
	if numberedPrefix.MatchString(text) || decimalPrefix.MatchString(text) {
		return 1.0
	}
	return 0
}

// isAllUpper reports whether the text contains letters and none of them
// are lowercase.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func firstRuneUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
