package profile

import (
	"testing"

	"github.com/yungbote/cognify-backend/internal/domain"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func findResult(t *testing.T, results []domain.InferenceResult, d domain.Dimension) domain.InferenceResult {
	t.Helper()
	for _, r := range results {
		if r.Dimension == d {
			return r
		}
	}
	t.Fatalf("no result for dimension %s in %v", d, results)
	return domain.InferenceResult{}
}

func hasResult(results []domain.InferenceResult, d domain.Dimension) bool {
	for _, r := range results {
		if r.Dimension == d {
			return true
		}
	}
	return false
}

func TestInfer_HighVideoRatioYieldsVisual(t *testing.T) {
	w := domain.BehavioralWindow{
		VideoToTextRatio:   fptr(3.0),
		AvgVideoCompletion: fptr(4.0),
	}
	r := findResult(t, Infer(w), domain.DimInputPreference)
	if r.Value != domain.InputVisual {
		t.Fatalf("expected visual, got %q", r.Value)
	}
	if r.Confidence != 0.90 {
		t.Fatalf("expected confidence 0.90, got %g", r.Confidence)
	}
	if r.Evidence["video_to_text_ratio"] != 3.0 {
		t.Fatalf("expected ratio echoed in evidence, got %v", r.Evidence)
	}
}

func TestInfer_LowVideoRatioYieldsVerbal(t *testing.T) {
	w := domain.BehavioralWindow{
		VideoToTextRatio:     fptr(0.2),
		AvgArticleCompletion: fptr(4.2),
	}
	r := findResult(t, Infer(w), domain.DimInputPreference)
	if r.Value != domain.InputVerbal || r.Confidence != 0.90 {
		t.Fatalf("expected verbal/0.90, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_RatioWithoutEngagementFallsToMixed(t *testing.T) {
	w := domain.BehavioralWindow{VideoToTextRatio: fptr(3.0)}
	r := findResult(t, Infer(w), domain.DimInputPreference)
	if r.Value != domain.Mixed || r.Confidence != 0.60 {
		t.Fatalf("expected mixed/0.60, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_FrustrationAndLowCompletionYieldLowTolerance(t *testing.T) {
	w := domain.BehavioralWindow{
		FrustrationEvents: iptr(6),
		CompletionRate:    fptr(0.4),
	}
	r := findResult(t, Infer(w), domain.DimComplexityTolerance)
	if r.Value != domain.ComplexityLow || r.Confidence != 0.75 {
		t.Fatalf("expected low/0.75, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_VelocityAndCompletionYieldHighTolerance(t *testing.T) {
	w := domain.BehavioralWindow{
		LearningVelocity: fptr(0.8),
		CompletionRate:   fptr(0.9),
	}
	r := findResult(t, Infer(w), domain.DimComplexityTolerance)
	if r.Value != domain.ComplexityHigh || r.Confidence != 0.85 {
		t.Fatalf("expected high/0.85, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_MidrangeSignalsFallToMediumTolerance(t *testing.T) {
	w := domain.BehavioralWindow{CompletionRate: fptr(0.6)}
	r := findResult(t, Infer(w), domain.DimComplexityTolerance)
	if r.Value != domain.ComplexityMedium || r.Confidence != 0.70 {
		t.Fatalf("expected medium/0.70, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_InteractiveShareDrivesEngagementStyle(t *testing.T) {
	cases := []struct {
		name        string
		interactive int
		total       int
		value       string
		confidence  float64
	}{
		{"active above 30 percent", 4, 10, domain.EngagementActive, 0.80},
		{"passive below 10 percent", 1, 20, domain.EngagementPassive, 0.75},
		{"mixed in between", 2, 10, domain.Mixed, 0.65},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := domain.BehavioralWindow{
				InteractiveCount:  tc.interactive,
				TotalInteractions: tc.total,
			}
			r := findResult(t, Infer(w), domain.DimEngagementStyle)
			if r.Value != tc.value || r.Confidence != tc.confidence {
				t.Fatalf("expected %q/%g, got %q/%g", tc.value, tc.confidence, r.Value, r.Confidence)
			}
		})
	}
}

func TestInfer_LowRevisitHighFocusYieldsIndependent(t *testing.T) {
	w := domain.BehavioralWindow{
		ConceptRevisitRate: fptr(1.0),
		AvgFocusScore:      fptr(0.8),
	}
	r := findResult(t, Infer(w), domain.DimLearningAutonomy)
	if r.Value != domain.AutonomyIndependent || r.Confidence != 0.80 {
		t.Fatalf("expected independent/0.80, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_FrustrationAloneYieldsGuided(t *testing.T) {
	w := domain.BehavioralWindow{FrustrationEvents: iptr(4)}
	r := findResult(t, Infer(w), domain.DimLearningAutonomy)
	if r.Value != domain.AutonomyGuided || r.Confidence != 0.75 {
		t.Fatalf("expected guided/0.75, got %q/%g", r.Value, r.Confidence)
	}
}

func TestInfer_EmptyWindowYieldsNoCandidates(t *testing.T) {
	results := Infer(domain.BehavioralWindow{})
	if len(results) != 0 {
		t.Fatalf("expected no candidates, got %v", results)
	}
}

func TestInfer_NilFieldsNeverDefaultDimensions(t *testing.T) {
	// Session data only: interaction-derived dimensions must stay absent
	// instead of falling through to a mixed candidate.
	w := domain.BehavioralWindow{
		AvgFocusScore:      fptr(0.8),
		ConceptRevisitRate: fptr(1.0),
	}
	results := Infer(w)
	if hasResult(results, domain.DimInputPreference) {
		t.Fatalf("input_preference should be omitted without interaction data")
	}
	if hasResult(results, domain.DimEngagementStyle) {
		t.Fatalf("engagement_style should be omitted without interaction data")
	}
	if !hasResult(results, domain.DimLearningAutonomy) {
		t.Fatalf("learning_autonomy should fire on session data")
	}
}

func TestInfer_UndefinedDimensionsNeverProduceCandidates(t *testing.T) {
	w := domain.BehavioralWindow{
		VideoToTextRatio:   fptr(3.0),
		AvgVideoCompletion: fptr(4.0),
		CompletionRate:     fptr(0.9),
		LearningVelocity:   fptr(0.8),
		ConceptRevisitRate: fptr(1.0),
		AvgFocusScore:      fptr(0.8),
		FrustrationEvents:  iptr(0),
		InteractiveCount:   5,
		TotalInteractions:  10,
	}
	for _, r := range Infer(w) {
		switch r.Dimension {
		case domain.DimInstructionFlow, domain.DimConceptType,
			domain.DimMotivationType, domain.DimFeedbackPreference:
			t.Fatalf("dimension %s has no defined rules but produced %v", r.Dimension, r)
		}
	}
}
