package profile

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cognify-backend/internal/domain"
)

func deriveWith(t *testing.T, responses map[string]string) *domain.CognitiveProfile {
	t.Helper()
	return DeriveInitialProfile(uuid.New(), responses, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestDeriveInitialProfile_VideoAnswerSeedsVisual(t *testing.T) {
	p := deriveWith(t, map[string]string{
		QLearningMedium: "Video tutorials with visual demonstrations",
	})
	value, confidence := p.Dimension(domain.DimInputPreference)
	if value != domain.InputVisual || confidence != 0.75 {
		t.Fatalf("expected visual/0.75, got %q/%g", value, confidence)
	}
}

func TestDeriveInitialProfile_DiagramsAnswerAlsoSeedsVisual(t *testing.T) {
	p := deriveWith(t, map[string]string{
		QExplanationStyle: "Diagrams, flowcharts, and visual representations",
	})
	if value, _ := p.Dimension(domain.DimInputPreference); value != domain.InputVisual {
		t.Fatalf("expected visual, got %q", value)
	}
}

func TestDeriveInitialProfile_StepByStepSeedsLinearFlow(t *testing.T) {
	p := deriveWith(t, map[string]string{
		QLearningPath: "Step-by-step in a structured order",
	})
	value, confidence := p.Dimension(domain.DimInstructionFlow)
	if value != domain.FlowLinear || confidence != 0.8 {
		t.Fatalf("expected linear/0.8, got %q/%g", value, confidence)
	}
}

func TestDeriveInitialProfile_ComplexityAnswers(t *testing.T) {
	cases := []struct {
		answer string
		value  string
	}{
		{"Excited - I enjoy challenging material", domain.ComplexityHigh},
		{"Overwhelmed - I prefer simpler explanations first", domain.ComplexityLow},
		{"It depends on the topic", domain.ComplexityMedium},
	}
	for _, tc := range cases {
		p := deriveWith(t, map[string]string{QComplexityComfort: tc.answer})
		if value, _ := p.Dimension(domain.DimComplexityTolerance); value != tc.value {
			t.Fatalf("answer %q: expected %q, got %q", tc.answer, tc.value, value)
		}
	}
}

func TestDeriveInitialProfile_UnansweredFallsToMixedDefaults(t *testing.T) {
	p := deriveWith(t, map[string]string{})
	for _, d := range []domain.Dimension{
		domain.DimInputPreference,
		domain.DimEngagementStyle,
		domain.DimConceptType,
		domain.DimMotivationType,
		domain.DimFeedbackPreference,
		domain.DimInstructionFlow,
		domain.DimLearningAutonomy,
	} {
		value, confidence := p.Dimension(d)
		if !d.ValidValue(value) {
			t.Fatalf("dimension %s seeded outside its domain: %q", d, value)
		}
		if confidence < 0.5 || confidence > 0.8 {
			t.Fatalf("dimension %s seeded with implausible confidence %g", d, confidence)
		}
	}
	if value, _ := p.Dimension(domain.DimComplexityTolerance); value != domain.ComplexityMedium {
		t.Fatalf("expected medium complexity fallback, got %q", value)
	}
	if p.ProfileVersion != 1 || p.TotalAdaptations != 0 {
		t.Fatalf("fresh profile must start at version 1 with no adaptations")
	}
}

func TestExperienceLevel_ClassifiesAnswers(t *testing.T) {
	cases := map[string]string{
		"Complete beginner - no prior experience":    "none",
		"Beginner - some basic knowledge":            DifficultyBeginner,
		"Intermediate - comfortable with fundamentals": DifficultyIntermediate,
		"Advanced - experienced programmer":          DifficultyAdvanced,
	}
	for answer, want := range cases {
		if got := ExperienceLevel(map[string]string{QExperience: answer}); got != want {
			t.Fatalf("answer %q: expected %q, got %q", answer, want, got)
		}
	}
}
