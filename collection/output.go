package collection

import (
	"time"

	"github.com/tsawler/docrank/relevance"
)

// refinedTextLimit caps the refined text carried in subsection analysis.
const refinedTextLimit = 500

// Metadata echoes the collection input plus a processing timestamp.
type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

// ExtractedSection is one ranked section in the collection output.
type ExtractedSection struct {
	Document       string `json:"document"`
	PageNumber     int    `json:"page_number"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
}

// SubsectionAnalysis carries the truncated content of a ranked section.
type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

// Output is the collection result in its wire format.
type Output struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// BuildOutput assembles the wire-format output from the diversified,
// rank-assigned section list.
func BuildOutput(input Input, sections []relevance.RelevantSection, now time.Time) Output {
	out := Output{
		Metadata: Metadata{
			InputDocuments:      input.Documents,
			Persona:             input.Persona,
			JobToBeDone:         input.Job,
			ProcessingTimestamp: now.Format(time.RFC3339),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(sections)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(sections)),
	}
	for _, s := range sections {
		out.ExtractedSections = append(out.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			PageNumber:     s.Page,
			SectionTitle:   s.Title,
			ImportanceRank: s.Rank,
		})
		out.SubsectionAnalysis = append(out.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: truncate(s.Content, refinedTextLimit),
			PageNumber:  s.Page,
		})
	}
	return out
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
