package profile

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cognify-backend/internal/domain"
)

func testProfile(t *testing.T) *domain.CognitiveProfile {
	t.Helper()
	return domain.NewDefaultProfile(uuid.New(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestMerge_EmptyResultsIsIdempotent(t *testing.T) {
	p := testProfile(t)
	before := *p

	changed, err := Merge(p, nil, MergeOptions{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if changed {
		t.Fatalf("expected no change")
	}
	if p.ProfileVersion != before.ProfileVersion || p.TotalAdaptations != before.TotalAdaptations {
		t.Fatalf("version/adaptations must not move on a no-op merge: %d/%d", p.ProfileVersion, p.TotalAdaptations)
	}
	if p.LastUpdated != before.LastUpdated {
		t.Fatalf("last_updated must not move on a no-op merge")
	}
}

func TestMerge_HighConfidenceCandidateAdoptsValue(t *testing.T) {
	p := testProfile(t)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	changed, err := Merge(p, []domain.InferenceResult{
		{Dimension: domain.DimInputPreference, Value: domain.InputVisual, Confidence: 0.90},
	}, MergeOptions{Now: now})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !changed {
		t.Fatalf("expected change")
	}
	value, confidence := p.Dimension(domain.DimInputPreference)
	if value != domain.InputVisual {
		t.Fatalf("expected adopted value visual, got %q", value)
	}
	want := 0.5*0.85 + 0.90*0.15
	if math.Abs(confidence-want) > 1e-9 {
		t.Fatalf("expected blended confidence %g, got %g", want, confidence)
	}
	if p.ProfileVersion != 2 || p.TotalAdaptations != 1 {
		t.Fatalf("expected version 2 and adaptations 1, got %d/%d", p.ProfileVersion, p.TotalAdaptations)
	}
	if !p.LastUpdated.Equal(now) {
		t.Fatalf("expected last_updated %v, got %v", now, p.LastUpdated)
	}
}

func TestMerge_LowConfidenceCandidateBlendsWithoutOverwriting(t *testing.T) {
	p := testProfile(t)
	p.SetDimension(domain.DimLearningAutonomy, domain.AutonomyIndependent, 0.80)
	versionBefore := p.ProfileVersion

	changed, err := Merge(p, []domain.InferenceResult{
		{Dimension: domain.DimLearningAutonomy, Value: domain.Mixed, Confidence: 0.60},
	}, MergeOptions{})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !changed {
		t.Fatalf("confidence blend is still a change")
	}
	value, confidence := p.Dimension(domain.DimLearningAutonomy)
	if value != domain.AutonomyIndependent {
		t.Fatalf("below-threshold candidate must not overwrite the value, got %q", value)
	}
	if math.Abs(confidence-0.77) > 1e-9 {
		t.Fatalf("expected blended confidence 0.77, got %g", confidence)
	}
	if p.ProfileVersion != versionBefore+1 {
		t.Fatalf("expected version bump by exactly 1, got %d -> %d", versionBefore, p.ProfileVersion)
	}
}

func TestMerge_UntouchedDimensionsKeepValueAndConfidence(t *testing.T) {
	p := testProfile(t)
	flowBefore, flowConfBefore := p.Dimension(domain.DimInstructionFlow)

	if _, err := Merge(p, []domain.InferenceResult{
		{Dimension: domain.DimEngagementStyle, Value: domain.EngagementActive, Confidence: 0.80},
	}, MergeOptions{}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	flow, flowConf := p.Dimension(domain.DimInstructionFlow)
	if flow != flowBefore || flowConf != flowConfBefore {
		t.Fatalf("unsignaled dimension moved: %q/%g", flow, flowConf)
	}
}

func TestMerge_ConfidencesStayWithinUnitInterval(t *testing.T) {
	p := testProfile(t)
	results := []domain.InferenceResult{
		{Dimension: domain.DimInputPreference, Value: domain.InputVisual, Confidence: 0.90},
		{Dimension: domain.DimComplexityTolerance, Value: domain.ComplexityLow, Confidence: 0.75},
		{Dimension: domain.DimEngagementStyle, Value: domain.EngagementActive, Confidence: 0.80},
		{Dimension: domain.DimLearningAutonomy, Value: domain.AutonomyGuided, Confidence: 0.75},
	}
	for i := 0; i < 50; i++ {
		if _, err := Merge(p, results, MergeOptions{}); err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
	}
	for _, d := range domain.AllDimensions() {
		value, confidence := p.Dimension(d)
		if confidence < 0 || confidence > 1 {
			t.Fatalf("dimension %s confidence %g outside [0,1]", d, confidence)
		}
		if !d.ValidValue(value) {
			t.Fatalf("dimension %s value %q outside domain", d, value)
		}
	}
}

func TestMerge_RejectsOutOfRangeConfidence(t *testing.T) {
	p := testProfile(t)
	before := *p

	_, err := Merge(p, []domain.InferenceResult{
		{Dimension: domain.DimInputPreference, Value: domain.InputVisual, Confidence: 1.5},
	}, MergeOptions{})
	var iv *InvariantViolationError
	if !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolationError, got %v", err)
	}
	if p.ProfileVersion != before.ProfileVersion {
		t.Fatalf("failed merge must not bump version")
	}
}

func TestMerge_RejectsValueOutsideDimensionDomain(t *testing.T) {
	p := testProfile(t)
	_, err := Merge(p, []domain.InferenceResult{
		{Dimension: domain.DimComplexityTolerance, Value: domain.Mixed, Confidence: 0.9},
	}, MergeOptions{})
	var iv *InvariantViolationError
	if !errors.As(err, &iv) {
		t.Fatalf("expected InvariantViolationError for mixed complexity, got %v", err)
	}
}

func TestMerge_RepeatedIdenticalEvidenceConverges(t *testing.T) {
	p := testProfile(t)
	results := []domain.InferenceResult{
		{Dimension: domain.DimInputPreference, Value: domain.InputVisual, Confidence: 0.90},
	}
	for i := 0; i < 200; i++ {
		if _, err := Merge(p, results, MergeOptions{}); err != nil {
			t.Fatalf("merge %d: %v", i, err)
		}
	}
	_, confidence := p.Dimension(domain.DimInputPreference)
	if math.Abs(confidence-0.90) > 1e-6 {
		t.Fatalf("repeated evidence should converge to the candidate confidence, got %g", confidence)
	}
}
