package profile

import (
	"strings"
	"unicode/utf8"
)

// Expected output categories, chosen by trigger priority.
const (
	OutputMenuPlan         = "menu_plan"
	OutputTravelPlan       = "travel_plan"
	OutputLiteratureReview = "literature_review"
)

// JobProfile is a structured representation of a task description.
type JobProfile struct {
	// TaskDescription is the original free text, preserved for the
	// scorer's contextual trigger checks and for output metadata.
	TaskDescription string

	// RequiredContentTypes are content categories implied by the task.
	RequiredContentTypes []string

	// PriorityKeywords are the leading significant words of the task
	// text, in original order.
	PriorityKeywords []string

	// ExpectedOutputType categorizes what kind of deliverable the task
	// asks for.
	ExpectedOutputType string
}

// ContentTypeRule expands trigger substrings into content-type terms.
type ContentTypeRule struct {
	Triggers []string
	Types    []string
}

// JobConfig holds the job parser's expansion rules and keyword limits.
type JobConfig struct {
	ContentTypeRules []ContentTypeRule

	// MaxPriorityKeywords caps the extracted keyword list. Default: 10.
	MaxPriorityKeywords int

	// MinKeywordLength is the rune count a word must exceed to count as
	// significant. Default: 4.
	MinKeywordLength int

	// KeywordStopwords are common words excluded from priority keywords.
	KeywordStopwords map[string]bool

	// MenuTriggers and PlanTriggers drive output-type selection, checked
	// in that priority order.
	MenuTriggers []string
	PlanTriggers []string
}

// DefaultJobConfig returns the built-in expansion rules.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		ContentTypeRules: []ContentTypeRule{
			{Triggers: []string{"methodology", "method"}, Types: []string{"methodology"}},
			{Triggers: []string{"result", "performance"}, Types: []string{"results"}},
			{Triggers: []string{"introduction", "background"}, Types: []string{"background"}},
			{Triggers: []string{"dataset", "data"}, Types: []string{"datasets"}},
			{Triggers: []string{"plan", "trip", "travel"}, Types: []string{"accommodation", "restaurant", "activity", "attraction"}},
			{Triggers: []string{"days", "itinerary"}, Types: []string{"schedule", "timing", "duration"}},
			{Triggers: []string{"group", "friends"}, Types: []string{"group", "social", "multiple"}},
			{Triggers: []string{"menu", "buffet", "catering", "meal"}, Types: []string{"menu", "recipe", "cooking", "food", "catering", "buffet"}},
			{Triggers: []string{"vegetarian", "gluten", "dietary"}, Types: []string{"vegetarian", "gluten-free", "dietary", "nutrition"}},
			{Triggers: []string{"corporate", "gathering", "event"}, Types: []string{"corporate", "catering", "event", "large-scale", "professional"}},
		},
		MaxPriorityKeywords: 10,
		MinKeywordLength:    4,
		KeywordStopwords: map[string]bool{
			"that": true,
			"this": true,
			"with": true,
			"from": true,
		},
		MenuTriggers: []string{"menu", "buffet", "catering", "meal"},
		PlanTriggers: []string{"plan"},
	}
}

// JobParser maps free-text task descriptions to structured job profiles.
type JobParser struct {
	config JobConfig
}

// NewJobParser creates a parser with the default rules.
func NewJobParser() *JobParser {
	return &JobParser{config: DefaultJobConfig()}
}

// NewJobParserWithConfig creates a parser with custom rules.
func NewJobParserWithConfig(config JobConfig) *JobParser {
	return &JobParser{config: config}
}

// Parse extracts a structured profile from a task description.
func (p *JobParser) Parse(text string) JobProfile {
	lower := strings.ToLower(text)

	var contentTypes []string
	for _, rule := range p.config.ContentTypeRules {
		if containsAny(lower, rule.Triggers) {
			contentTypes = append(contentTypes, rule.Types...)
		}
	}

	outputType := OutputLiteratureReview
	switch {
	case containsAny(lower, p.config.MenuTriggers):
		outputType = OutputMenuPlan
	case containsAny(lower, p.config.PlanTriggers):
		outputType = OutputTravelPlan
	}

	return JobProfile{
		TaskDescription:      text,
		RequiredContentTypes: contentTypes,
		PriorityKeywords:     p.priorityKeywords(lower),
		ExpectedOutputType:   outputType,
	}
}

// priorityKeywords takes the leading significant words of the task text in
// original order. Order beats frequency here: task descriptions front-load
// what matters.
func (p *JobParser) priorityKeywords(lower string) []string {
	var keywords []string
	for _, word := range strings.Fields(lower) {
		if utf8.RuneCountInString(word) <= p.config.MinKeywordLength {
			continue
		}
		if p.config.KeywordStopwords[word] {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) >= p.config.MaxPriorityKeywords {
			break
		}
	}
	return keywords
}
