package profile

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/cognify-backend/internal/domain"
)

var (
	windowStart = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd   = windowStart.AddDate(0, 0, 30)
)

func interaction(resourceType string, completion, engagement *float64) domain.ResourceInteraction {
	return domain.ResourceInteraction{
		ID:                   uuid.New(),
		ResourceType:         resourceType,
		StartedAt:            windowStart.Add(24 * time.Hour),
		CompletionPercentage: completion,
		EngagementScore:      engagement,
	}
}

func session(start time.Time, durationSeconds int, concepts datatypes.JSON) domain.LearningSession {
	return domain.LearningSession{
		ID:              uuid.New(),
		StartedAt:       start,
		DurationSeconds: durationSeconds,
		ConceptsCovered: concepts,
	}
}

func TestBuildWindow_NoVideoOrTextYieldsNilRatio(t *testing.T) {
	interactions := []domain.ResourceInteraction{
		interaction(domain.ResourceInteractive, nil, nil),
		interaction(domain.ResourceInteractive, nil, nil),
	}
	w := BuildWindow("u1", windowStart, windowEnd, nil, interactions, nil)
	if w.VideoToTextRatio != nil {
		t.Fatalf("expected nil ratio with zero video+text denominator, got %g", *w.VideoToTextRatio)
	}
	if w.InteractiveEngagementRate == nil || *w.InteractiveEngagementRate != 1.0 {
		t.Fatalf("expected interactive rate 1.0, got %v", w.InteractiveEngagementRate)
	}
}

func TestBuildWindow_RatioIsAProportion(t *testing.T) {
	interactions := []domain.ResourceInteraction{
		interaction(domain.ResourceVideo, fptr(4.0), nil),
		interaction(domain.ResourceVideo, fptr(3.0), nil),
		interaction(domain.ResourceVideo, nil, nil),
		interaction(domain.ResourceArticle, fptr(2.0), nil),
	}
	w := BuildWindow("u1", windowStart, windowEnd, nil, interactions, nil)
	if w.VideoToTextRatio == nil {
		t.Fatalf("expected a ratio")
	}
	if *w.VideoToTextRatio < 0 || *w.VideoToTextRatio > 1 {
		t.Fatalf("ratio must stay in [0,1], got %g", *w.VideoToTextRatio)
	}
	if math.Abs(*w.VideoToTextRatio-0.75) > 1e-9 {
		t.Fatalf("expected 3/(3+1)=0.75, got %g", *w.VideoToTextRatio)
	}
	// Means skip records with no recorded value rather than counting zeros.
	if w.AvgVideoCompletion == nil || math.Abs(*w.AvgVideoCompletion-3.5) > 1e-9 {
		t.Fatalf("expected avg video completion 3.5, got %v", w.AvgVideoCompletion)
	}
}

func TestBuildWindow_CodeExamplesCountAsText(t *testing.T) {
	interactions := []domain.ResourceInteraction{
		interaction(domain.ResourceCodeExample, nil, fptr(4.0)),
		interaction(domain.ResourceVideo, nil, nil),
	}
	w := BuildWindow("u1", windowStart, windowEnd, nil, interactions, nil)
	if w.TextCount != 1 {
		t.Fatalf("expected code example counted as text, got %d", w.TextCount)
	}
	if w.AvgTextEngagement == nil || *w.AvgTextEngagement != 4.0 {
		t.Fatalf("expected text engagement 4.0, got %v", w.AvgTextEngagement)
	}
}

func TestBuildWindow_NoSessionsLeavesSessionFieldsNil(t *testing.T) {
	w := BuildWindow("u1", windowStart, windowEnd, nil, nil, nil)
	if w.FrustrationEvents != nil || w.HelpRequests != nil {
		t.Fatalf("expected nil frustration/help counts without sessions")
	}
	if w.AvgFocusScore != nil || w.CompletionRate != nil || w.ConceptRevisitRate != nil {
		t.Fatalf("expected nil session aggregates without sessions")
	}
}

func TestBuildWindow_SumsFrustrationAndComputesRevisitRate(t *testing.T) {
	s1 := session(windowStart.Add(9*time.Hour), 1800, datatypes.JSON(`["loops","slices"]`))
	s1.FrustrationIndicators = 2
	s1.HelpRequests = 1
	s1.FocusScore = fptr(0.8)
	s2 := session(windowStart.Add(49*time.Hour), 3600, datatypes.JSON(`["loops"]`))
	s2.FrustrationIndicators = 4
	s2.CompletionRate = fptr(0.6)

	w := BuildWindow("u1", windowStart, windowEnd, []domain.LearningSession{s1, s2}, nil, nil)
	if w.FrustrationEvents == nil || *w.FrustrationEvents != 6 {
		t.Fatalf("expected 6 frustration events, got %v", w.FrustrationEvents)
	}
	if w.HelpRequests == nil || *w.HelpRequests != 1 {
		t.Fatalf("expected 1 help request, got %v", w.HelpRequests)
	}
	if w.UniqueConcepts != 2 {
		t.Fatalf("expected 2 unique concepts, got %d", w.UniqueConcepts)
	}
	if w.ConceptRevisitRate == nil || math.Abs(*w.ConceptRevisitRate-1.5) > 1e-9 {
		t.Fatalf("expected revisit rate 3/2=1.5, got %v", w.ConceptRevisitRate)
	}
	if w.AvgFocusScore == nil || *w.AvgFocusScore != 0.8 {
		t.Fatalf("focus mean must ignore nil scores, got %v", w.AvgFocusScore)
	}
	if w.AvgSessionMinutes == nil || math.Abs(*w.AvgSessionMinutes-45) > 1e-9 {
		t.Fatalf("expected 45 avg minutes, got %v", w.AvgSessionMinutes)
	}
}

func TestBuildWindow_MasteryAggregates(t *testing.T) {
	masteries := []domain.ConceptMastery{
		{ConceptName: "loops", CurrentLevel: domain.MasteryMastered, TotalTimeSpentSeconds: 7200, LearningVelocity: fptr(0.8), RetentionScore: fptr(0.9)},
		{ConceptName: "maps", CurrentLevel: domain.MasteryLearning, TotalTimeSpentSeconds: 3600, LearningVelocity: fptr(0.4)},
	}
	w := BuildWindow("u1", windowStart, windowEnd, nil, nil, masteries)
	if w.ConceptsTracked != 2 {
		t.Fatalf("expected 2 tracked concepts, got %d", w.ConceptsTracked)
	}
	if w.MasteryDistribution[domain.MasteryMastered] != 1 || w.MasteryDistribution[domain.MasteryLearning] != 1 {
		t.Fatalf("unexpected distribution %v", w.MasteryDistribution)
	}
	if w.LearningVelocity == nil || math.Abs(*w.LearningVelocity-0.6) > 1e-9 {
		t.Fatalf("expected velocity 0.6, got %v", w.LearningVelocity)
	}
	if w.RetentionScore == nil || *w.RetentionScore != 0.9 {
		t.Fatalf("retention mean must ignore nils, got %v", w.RetentionScore)
	}
	if w.AvgHoursPerConcept == nil || math.Abs(*w.AvgHoursPerConcept-1.5) > 1e-9 {
		t.Fatalf("expected 1.5 hours per concept, got %v", w.AvgHoursPerConcept)
	}
}

func TestBuildWindow_EmptyInputsProduceFullySilentWindow(t *testing.T) {
	w := BuildWindow("u1", windowStart, windowEnd, nil, nil, nil)
	if results := Infer(w); len(results) != 0 {
		t.Fatalf("a silent window must infer nothing, got %v", results)
	}
}
