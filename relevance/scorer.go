// Package relevance scores document sections against persona and job
// profiles, extracts section content between headings, and selects a
// diversified result set across documents.
package relevance

import (
	"strings"

	"github.com/tsawler/docrank/profile"
)

// ContextRule is a multiplicative adjustment that fires only in a given
// task context: the task text must contain one of TaskAnyOf, all of
// TaskAllOf, and the section text must contain one of SectionTerms.
type ContextRule struct {
	TaskAnyOf    []string
	TaskAllOf    []string
	SectionTerms []string
	Multiplier   float64
}

// ScorerConfig holds the relevance scorer's weight and multiplier tables.
// The tables are rule-based and tuned per vertical, not a generic
// similarity model.
type ScorerConfig struct {
	// PersonaKeywordWeight and JobKeywordWeight are the per-match additive
	// weights of the base score.
	PersonaKeywordWeight float64
	JobKeywordWeight     float64

	// SectionTypeWeights adds a fixed weight for every section-type term
	// found in the combined text. Weights are additive per match.
	SectionTypeWeights map[string]float64

	// ContextRules apply in order, each compounding the score. Order
	// matters: the rules expect an already-weighted base score.
	ContextRules []ContextRule

	// LengthNormalizationCap is the content length at which the length
	// bonus saturates. Default: 500.
	LengthNormalizationCap int
}

// DefaultScorerConfig returns tables tuned for research, travel-planning,
// and catering vocabularies.
func DefaultScorerConfig() ScorerConfig {
	dinnerContext := []string{"dinner", "menu"}
	return ScorerConfig{
		PersonaKeywordWeight: 0.1,
		JobKeywordWeight:     0.15,
		SectionTypeWeights: map[string]float64{
			"methodology":  0.8,
			"results":      0.7,
			"introduction": 0.6,
			"conclusion":   0.6,
			"abstract":     0.5,
			"background":   0.4,

			"restaurant":    0.9,
			"hotel":         0.9,
			"accommodation": 0.9,
			"activity":      0.8,
			"attraction":    0.8,
			"city":          0.8,
			"food":          0.7,
			"cuisine":       0.7,
			"history":       0.6,
			"culture":       0.6,
			"tradition":     0.6,
			"tips":          0.7,
			"guide":         0.7,

			"dinner":     0.9,
			"buffet":     0.9,
			"catering":   0.9,
			"vegetarian": 0.9,
			"menu":       0.8,
			"corporate":  0.8,
			"gluten":     0.8,
			"main":       0.7,
			"side":       0.7,
			"recipe":     0.7,
			"cooking":    0.6,
			"meal":       0.6,
			"lunch":      0.5,
			"breakfast":  0.3,
		},
		ContextRules: []ContextRule{
			{
				// Breakfast items are near-eliminated in dinner planning.
				TaskAnyOf: dinnerContext,
				SectionTerms: []string{
					"breakfast", "smoothie", "morning", "berry", "oatmeal",
					"parfait", "granola", "cereal", "muffin",
				},
				Multiplier: 0.01,
			},
			{
				TaskAnyOf: dinnerContext,
				TaskAllOf: []string{"vegetarian"},
				SectionTerms: []string{
					"beef", "chicken", "pork", "lamb", "shrimp", "fish", "seafood",
					"meat", "turkey", "bacon", "ham", "sausage", "taco", "salmon",
					"tuna", "cod", "mango salad",
				},
				Multiplier: 0.001,
			},
			{
				TaskAnyOf: dinnerContext,
				TaskAllOf: []string{"vegetarian"},
				SectionTerms: []string{
					"vegetable", "veggie", "plant", "falafel", "hummus",
					"ratatouille", "quinoa", "tofu", "chickpea", "lentil", "bean",
					"eggplant", "mushroom", "sushi rolls", "lasagna",
					"vegetable lasagna", "veggie sushi",
				},
				Multiplier: 5.0,
			},
			{
				TaskAnyOf: dinnerContext,
				SectionTerms: []string{
					"salad", "dip", "appetizer", "side", "rolls", "bread", "rice",
					"pasta", "casserole",
				},
				Multiplier: 1.8,
			},
			{
				TaskAnyOf:    dinnerContext,
				SectionTerms: []string{"dinner", "main", "entrée", "entree", "evening"},
				Multiplier:   2.0,
			},
			{
				TaskAnyOf:    dinnerContext,
				SectionTerms: []string{"buffet", "catering", "corporate", "large", "batch"},
				Multiplier:   1.5,
			},
		},
		LengthNormalizationCap: 500,
	}
}

// Scorer computes relevance scores for sections against a persona and job.
type Scorer struct {
	config ScorerConfig
}

// NewScorer creates a scorer with the default tables.
func NewScorer() *Scorer {
	return &Scorer{config: DefaultScorerConfig()}
}

// NewScorerWithConfig creates a scorer with custom tables.
func NewScorerWithConfig(config ScorerConfig) *Scorer {
	return &Scorer{config: config}
}

// Score computes the relevance of one section. Composition order is fixed:
// additive keyword and section-type terms first, then contextual
// multipliers, then the length scaler, then a clamp into [0,1].
func (s *Scorer) Score(title, content string, persona profile.PersonaProfile, job profile.JobProfile) float64 {
	combined := strings.ToLower(title + " " + content)
	task := strings.ToLower(job.TaskDescription)

	var score float64
	for _, keyword := range persona.FocusKeywords {
		if strings.Contains(combined, strings.ToLower(keyword)) {
			score += s.config.PersonaKeywordWeight
		}
	}
	for _, keyword := range job.PriorityKeywords {
		if strings.Contains(combined, keyword) {
			score += s.config.JobKeywordWeight
		}
	}

	for term, weight := range s.config.SectionTypeWeights {
		if strings.Contains(combined, term) {
			score += weight
		}
	}

	for _, rule := range s.config.ContextRules {
		if ruleApplies(rule, task, combined) {
			score *= rule.Multiplier
		}
	}

	lengthFactor := float64(len(content)) / float64(s.config.LengthNormalizationCap)
	if lengthFactor > 1 {
		lengthFactor = 1
	}
	score *= 0.5 + 0.5*lengthFactor

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func ruleApplies(rule ContextRule, task, combined string) bool {
	if !containsAny(task, rule.TaskAnyOf) {
		return false
	}
	for _, required := range rule.TaskAllOf {
		if !strings.Contains(task, required) {
			return false
		}
	}
	return containsAny(combined, rule.SectionTerms)
}

func containsAny(text string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
