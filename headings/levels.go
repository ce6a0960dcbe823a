package headings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/docrank/model"
)

// Level is the hierarchical depth of a heading (H1-H4).
type Level int

const (
	LevelUnknown Level = iota
	Level1             // H1 - top-level section
	Level2             // H2 - subsection
	Level3             // H3 - sub-subsection
	Level4             // H4 - deepest recognized level
)

// String returns the conventional "H1".."H4" form.
func (l Level) String() string {
	switch l {
	case Level1:
		return "H1"
	case Level2:
		return "H2"
	case Level3:
		return "H3"
	case Level4:
		return "H4"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the level as its "H1".."H4" string form.
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a "H1".."H4" string into a Level.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch strings.ToUpper(s) {
	case "H1":
		*l = Level1
	case "H2":
		*l = Level2
	case "H3":
		*l = Level3
	case "H4":
		*l = Level4
	default:
		return fmt.Errorf("invalid heading level %q", s)
	}
	return nil
}

// Numbering depth patterns, deepest first. Text-pattern assignment takes
// precedence over font-size tiering because numbering encodes the author's
// intended hierarchy directly.
var (
	level4Prefix = regexp.MustCompile(`^\d+\.\d+\.\d+\.\d+\s`)
	level3Prefix = regexp.MustCompile(`^\d+\.\d+\.\d+\s`)
	level2Prefix = regexp.MustCompile(`^\d+\.\d+\s`)
	level1Prefix = regexp.MustCompile(`^\d+\.?\s`)
)

// AssignLevels sets each candidate's level from its numbering prefix, or
// falls back to font-size comparison against the document average for
// non-numbered candidates.
func AssignLevels(candidates []Candidate, stats model.DocumentStats) {
	for i := range candidates {
		candidates[i].Level = levelFor(&candidates[i], stats)
	}
}

func levelFor(c *Candidate, stats model.DocumentStats) Level {
	text := strings.TrimSpace(c.Span.Text)

	switch {
	case level4Prefix.MatchString(text):
		return Level4
	case level3Prefix.MatchString(text):
		return Level3
	case level2Prefix.MatchString(text):
		return Level2
	case level1Prefix.MatchString(text):
		return Level1
	}

	// Non-numbered fallback: font size against the document average.
	if c.Span.FontSize > 1.2*stats.AvgFontSize {
		return Level1
	}
	return Level2
}

// SortReadingOrder orders candidates by (page, y position) ascending:
// reading order, not confidence order.
func SortReadingOrder(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Span.Page != candidates[j].Span.Page {
			return candidates[i].Span.Page < candidates[j].Span.Page
		}
		return candidates[i].Span.Y() < candidates[j].Span.Y()
	})
}
