package profile

import (
	"math"
	"testing"

	"github.com/yungbote/cognify-backend/internal/domain"
)

func TestMatchScore_ExactMatchCanExceedOne(t *testing.T) {
	p := testProfile(t)
	p.SetDimension(domain.DimInputPreference, domain.InputVisual, 0.9)
	p.SetDimension(domain.DimComplexityTolerance, domain.ComplexityHigh, 0.85)

	score := MatchScore(p, ResourceDescriptor{
		LearningStyle:   domain.InputVisual,
		DifficultyLevel: DifficultyAdvanced,
		EngagementScore: 5.0,
	})
	// Weights sum to 1.2 as published, so a perfect fit scores above 1.0.
	if math.Abs(score-1.2) > 1e-9 {
		t.Fatalf("expected 1.2 for a perfect match, got %g", score)
	}
}

func TestMatchScore_MixedResourceScoresPartialStyleFit(t *testing.T) {
	p := testProfile(t)
	p.SetDimension(domain.DimInputPreference, domain.InputVerbal, 0.8)

	score := MatchScore(p, ResourceDescriptor{
		LearningStyle:   domain.Mixed,
		DifficultyLevel: DifficultyIntermediate,
		EngagementScore: 0,
	})
	want := 0.7*0.6 + 1.0*0.4
	if math.Abs(score-want) > 1e-9 {
		t.Fatalf("expected %g, got %g", want, score)
	}
}

func TestPreferredDifficulty_MapsToleranceToLevels(t *testing.T) {
	cases := map[string]string{
		domain.ComplexityLow:    DifficultyBeginner,
		domain.ComplexityMedium: DifficultyIntermediate,
		domain.ComplexityHigh:   DifficultyAdvanced,
		"":                      DifficultyIntermediate,
	}
	for tolerance, want := range cases {
		if got := PreferredDifficulty(tolerance); got != want {
			t.Fatalf("tolerance %q: expected %q, got %q", tolerance, want, got)
		}
	}
}

func TestDifficultyMatch_OneStepBelowScoresPartial(t *testing.T) {
	if got := DifficultyMatch(DifficultyIntermediate, DifficultyBeginner); got != 0.7 {
		t.Fatalf("expected 0.7, got %g", got)
	}
	if got := DifficultyMatch(DifficultyAdvanced, DifficultyIntermediate); got != 0.7 {
		t.Fatalf("expected 0.7, got %g", got)
	}
	if got := DifficultyMatch(DifficultyBeginner, DifficultyAdvanced); got != 0.5 {
		t.Fatalf("expected 0.5, got %g", got)
	}
}

func TestMatchScore_ClampsEngagementToUnitRange(t *testing.T) {
	p := testProfile(t)
	high := MatchScore(p, ResourceDescriptor{LearningStyle: domain.Mixed, DifficultyLevel: DifficultyIntermediate, EngagementScore: 50})
	capped := MatchScore(p, ResourceDescriptor{LearningStyle: domain.Mixed, DifficultyLevel: DifficultyIntermediate, EngagementScore: 5})
	if high != capped {
		t.Fatalf("engagement above scale must clamp: %g vs %g", high, capped)
	}
}
