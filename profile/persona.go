// Package profile converts free-text persona and task descriptions into
// the structured keyword profiles consumed by relevance scoring.
package profile

import "strings"

// PersonaProfile is a structured representation of a reader persona.
type PersonaProfile struct {
	// Role is the matched entry from the role taxonomy, or "general" when
	// no trigger keyword matches.
	Role string

	// ExpertiseAreas are domain terms derived from markers found in the
	// persona text.
	ExpertiseAreas []string

	// FocusKeywords is the union of expertise-area terms and the matched
	// role's trigger keywords, used directly by the scorer.
	FocusKeywords []string

	// ExperienceLevel is not inferable from free text, so it carries a
	// fixed default.
	ExperienceLevel string
}

// GeneralRole is the fallback role when no taxonomy entry matches.
const GeneralRole = "general"

// RoleEntry binds a role name to the keywords that trigger it. Entries are
// checked in order and the first match wins.
type RoleEntry struct {
	Role     string
	Keywords []string
}

// DomainMarker expands a set of trigger substrings into an expertise
// keyword cluster.
type DomainMarker struct {
	Triggers []string
	Terms    []string
}

// PersonaConfig holds the persona parser's lookup tables.
type PersonaConfig struct {
	Roles           []RoleEntry
	Domains         []DomainMarker
	ExperienceLevel string
}

// DefaultPersonaConfig returns the built-in role taxonomy and domain
// markers. The tables are tuned for research, travel-planning, and
// food-service vocabularies.
func DefaultPersonaConfig() PersonaConfig {
	return PersonaConfig{
		Roles: []RoleEntry{
			{Role: "researcher", Keywords: []string{"research", "study", "analysis", "methodology", "experiment"}},
			{Role: "student", Keywords: []string{"learn", "understand", "study", "exam", "concept"}},
			{Role: "analyst", Keywords: []string{"analyze", "evaluate", "assess", "compare", "trends"}},
			{Role: "manager", Keywords: []string{"strategy", "decision", "overview", "summary", "business"}},
			{Role: "planner", Keywords: []string{"plan", "organize", "schedule", "arrange", "coordinate"}},
			{Role: "travel", Keywords: []string{"travel", "trip", "visit", "destination", "tourism"}},
			{Role: "food", Keywords: []string{"food", "contractor", "catering", "menu", "recipe", "cooking", "meal", "nutrition", "buffet", "corporate"}},
		},
		Domains: []DomainMarker{
			{
				Triggers: []string{"biology", "computational biology"},
				Terms:    []string{"biology", "computational", "molecular"},
			},
			{
				Triggers: []string{"chemistry"},
				Terms:    []string{"chemistry", "organic", "reaction"},
			},
			{
				Triggers: []string{"investment", "financial"},
				Terms:    []string{"finance", "investment", "revenue"},
			},
			{
				Triggers: []string{"travel", "planner"},
				Terms:    []string{"travel", "tourism", "destination", "accommodation", "restaurant", "activity"},
			},
			{
				Triggers: []string{"food", "contractor", "catering"},
				Terms: []string{
					"food", "catering", "menu", "recipe", "cooking", "meal", "nutrition",
					"buffet", "vegetarian", "gluten", "corporate", "dinner", "lunch", "breakfast",
				},
			},
		},
		ExperienceLevel: "intermediate",
	}
}

// PersonaParser maps free-text persona descriptions onto the role taxonomy.
type PersonaParser struct {
	config PersonaConfig
}

// NewPersonaParser creates a parser with the default tables.
func NewPersonaParser() *PersonaParser {
	return &PersonaParser{config: DefaultPersonaConfig()}
}

// NewPersonaParserWithConfig creates a parser with custom tables, allowing
// the taxonomy to be retuned for a different vertical.
func NewPersonaParserWithConfig(config PersonaConfig) *PersonaParser {
	return &PersonaParser{config: config}
}

// Parse extracts a structured profile from a persona description. An
// unrecognized persona yields the general role with no expertise areas.
func (p *PersonaParser) Parse(text string) PersonaProfile {
	lower := strings.ToLower(text)

	role := GeneralRole
	var roleKeywords []string
	for _, entry := range p.config.Roles {
		if containsAny(lower, entry.Keywords) {
			role = entry.Role
			roleKeywords = entry.Keywords
			break
		}
	}

	var expertise []string
	for _, marker := range p.config.Domains {
		if containsAny(lower, marker.Triggers) {
			expertise = append(expertise, marker.Terms...)
		}
	}

	focus := make([]string, 0, len(expertise)+len(roleKeywords))
	focus = append(focus, expertise...)
	focus = append(focus, roleKeywords...)

	return PersonaProfile{
		Role:            role,
		ExpertiseAreas:  expertise,
		FocusKeywords:   focus,
		ExperienceLevel: p.config.ExperienceLevel,
	}
}

func containsAny(text string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
