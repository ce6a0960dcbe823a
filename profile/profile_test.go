package profile

import (
	"reflect"
	"testing"
)

func TestParsePersonaRoles(t *testing.T) {
	p := NewPersonaParser()

	tests := []struct {
		name     string
		text     string
		wantRole string
	}{
		{"researcher", "PhD researcher in computational biology", "researcher"},
		{"travel planner matches planner first", "Travel planner arranging trips", "planner"},
		{"food contractor", "Food contractor catering corporate events", "food"},
		{"analyst", "Investment analyst evaluating company trends", "analyst"},
		{"unrecognized", "Professional juggler", GeneralRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.text)
			if got.Role != tt.wantRole {
				t.Errorf("role = %q, want %q", got.Role, tt.wantRole)
			}
		})
	}
}

func TestParsePersonaGeneralFallback(t *testing.T) {
	got := NewPersonaParser().Parse("Professional juggler")

	if got.Role != GeneralRole {
		t.Errorf("role = %q, want %q", got.Role, GeneralRole)
	}
	if len(got.ExpertiseAreas) != 0 {
		t.Errorf("expertise = %v, want empty", got.ExpertiseAreas)
	}
	if len(got.FocusKeywords) != 0 {
		t.Errorf("focus keywords = %v, want empty for the general role", got.FocusKeywords)
	}
	if got.ExperienceLevel != "intermediate" {
		t.Errorf("experience = %q", got.ExperienceLevel)
	}
}

func TestParsePersonaExpertiseExpansion(t *testing.T) {
	got := NewPersonaParser().Parse("Researcher in computational biology")

	wantAreas := []string{"biology", "computational", "molecular"}
	if !reflect.DeepEqual(got.ExpertiseAreas, wantAreas) {
		t.Errorf("expertise = %v, want %v", got.ExpertiseAreas, wantAreas)
	}

	// Focus keywords are expertise terms followed by role triggers.
	if len(got.FocusKeywords) != len(wantAreas)+5 {
		t.Errorf("focus keywords = %v", got.FocusKeywords)
	}
	if got.FocusKeywords[0] != "biology" || got.FocusKeywords[3] != "research" {
		t.Errorf("focus keyword order = %v", got.FocusKeywords)
	}
}

func TestParseJobContentTypes(t *testing.T) {
	got := NewJobParser().Parse("Prepare a vegetarian buffet-style dinner menu for a corporate gathering")

	for _, want := range []string{"menu", "catering", "vegetarian", "dietary", "corporate", "professional"} {
		found := false
		for _, ct := range got.RequiredContentTypes {
			if ct == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("content types missing %q: %v", want, got.RequiredContentTypes)
		}
	}
}

func TestParseJobPriorityKeywords(t *testing.T) {
	got := NewJobParser().Parse("Plan a trip of four days for a group of ten college friends departing from Boston")

	want := []string{"group", "college", "friends", "departing", "boston"}
	if !reflect.DeepEqual(got.PriorityKeywords, want) {
		t.Errorf("priority keywords = %v, want %v (length > 4, stopwords out, original order)",
			got.PriorityKeywords, want)
	}
}

func TestParseJobOutputType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Prepare a buffet dinner menu", OutputMenuPlan},
		{"Plan a trip to Kyoto", OutputTravelPlan},
		{"Summarize methodologies across papers", OutputLiteratureReview},
		{"Plan the catering menu", OutputMenuPlan}, // menu wins over plan
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewJobParser().Parse(tt.text); got.ExpectedOutputType != tt.want {
				t.Errorf("Parse(%q).ExpectedOutputType = %q, want %q", tt.text, got.ExpectedOutputType, tt.want)
			}
		})
	}
}
