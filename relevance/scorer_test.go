package relevance

import (
	"strings"
	"testing"

	"github.com/tsawler/docrank/profile"
)

func cateringProfiles() (profile.PersonaProfile, profile.JobProfile) {
	persona := profile.NewPersonaParser().Parse("Food Contractor")
	job := profile.NewJobParser().Parse("Prepare a vegetarian buffet-style dinner menu for a corporate gathering")
	return persona, job
}

func TestScoreClamped(t *testing.T) {
	persona, job := cateringProfiles()
	s := NewScorer()

	// A section loaded with bonus terms must still clamp at 1.0.
	score := s.Score(
		"Vegetable Lasagna",
		strings.Repeat("vegetable lasagna dinner entrée buffet catering corporate salad rice ", 10),
		persona, job)
	if score < 0 || score > 1 {
		t.Errorf("score = %v, out of [0,1]", score)
	}
	if score != 1 {
		t.Errorf("score = %v, want clamped to 1", score)
	}
}

func TestBreakfastPenaltyVersusDinnerBonus(t *testing.T) {
	persona, job := cateringProfiles()
	s := NewScorer()

	breakfast := s.Score("Oatmeal Parfait",
		"Layer oats and yogurt in a glass, top with granola and fresh fruit.",
		persona, job)
	dinner := s.Score("Vegetable Lasagna",
		"Layer pasta with roasted vegetables and bake, a hearty dinner entrée that serves a crowd.",
		persona, job)

	if breakfast >= dinner {
		t.Errorf("breakfast item scored %v, dinner item %v; want breakfast < dinner",
			breakfast, dinner)
	}
}

func TestMeatPenaltyForVegetarianJobs(t *testing.T) {
	persona, job := cateringProfiles()
	s := NewScorer()

	meat := s.Score("Chicken Skewers",
		"Grill chicken skewers and serve with dipping sauce for dinner.",
		persona, job)
	veggie := s.Score("Falafel Platter",
		"Serve falafel with hummus and flatbread for dinner.",
		persona, job)

	if meat >= veggie {
		t.Errorf("meat item scored %v, vegetarian item %v; want meat < veggie", meat, veggie)
	}
}

func TestContextRulesRequireTaskTrigger(t *testing.T) {
	persona := profile.NewPersonaParser().Parse("Researcher studying nutrition")
	job := profile.NewJobParser().Parse("Review literature on breakfast habits")
	s := NewScorer()

	// Without a dinner/menu task, breakfast content is not penalized.
	score := s.Score("Breakfast Patterns",
		"A survey of breakfast habits across several nutrition studies and results.",
		persona, job)
	if score <= 0.1 {
		t.Errorf("score = %v; breakfast penalty must not fire outside dinner planning", score)
	}
}

func TestLengthNormalization(t *testing.T) {
	// Neutral profiles keep the contextual multipliers out of the way so
	// only the length scaler separates the two scores.
	persona := profile.NewPersonaParser().Parse("Juggler")
	job := profile.NewJobParser().Parse("Review produce suppliers")
	s := NewScorer()

	short := s.Score("Suppliers", "produce", persona, job)
	long := s.Score("Suppliers", "produce "+strings.Repeat("from regional farms ", 30), persona, job)

	if short >= long {
		t.Errorf("short content scored %v, long content %v; want short < long", short, long)
	}
}

func TestScoreIrrelevantSection(t *testing.T) {
	persona, job := cateringProfiles()
	score := NewScorer().Score("Compiler Internals",
		"Register allocation strategies in modern compilers.",
		persona, job)
	if score > MinRelevance {
		t.Errorf("score = %v, want <= %v for an unrelated section", score, MinRelevance)
	}
}
