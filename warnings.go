package docrank

import "strings"

// Warning codes reported by terminal operations.
const (
	WarnEmptyDocument = "empty-document"
	WarnNoHeadings    = "no-headings"
	WarnNoSections    = "no-sections"
)

// Warning describes a non-fatal condition encountered while analyzing a
// document. Expected "nothing found" outcomes are warnings, not errors.
type Warning struct {
	Code    string
	Message string
}

// String returns the warning in "code: message" form.
func (w Warning) String() string {
	return w.Code + ": " + w.Message
}

// FormatWarnings joins warnings into a single human-readable string.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
