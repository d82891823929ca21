package profile

import "github.com/yungbote/cognify-backend/internal/domain"

// Infer evaluates the documented rule chains against a window and returns one
// candidate per dimension that has enough signal. Chains are ordered and
// first-match-wins; dimensions are evaluated independently of each other. A
// rule whose operand is nil does not fire, and a dimension whose chain has no
// usable signal at all is omitted from the result rather than defaulted.
//
// Only four dimensions carry defined chains. The remaining four have no rule
// set yet and stay perpetually unsignaled until one is specified.
func Infer(w domain.BehavioralWindow) []domain.InferenceResult {
	var results []domain.InferenceResult
	for _, infer := range ruleChains {
		if r, ok := infer(w); ok {
			results = append(results, r)
		}
	}
	return results
}

var ruleChains = []func(domain.BehavioralWindow) (domain.InferenceResult, bool){
	inferInputPreference,
	inferComplexityTolerance,
	inferEngagementStyle,
	inferLearningAutonomy,
}

func inferInputPreference(w domain.BehavioralWindow) (domain.InferenceResult, bool) {
	if w.VideoToTextRatio == nil {
		return domain.InferenceResult{}, false
	}
	ratio := *w.VideoToTextRatio
	visual := coalesce(w.AvgVideoCompletion, w.AvgVideoEngagement)
	verbal := coalesce(w.AvgArticleCompletion, w.AvgTextEngagement)

	switch {
	case ratio > 2.0 && visual != nil && *visual > 3.5:
		return result(domain.DimInputPreference, domain.InputVisual, 0.90, evidence{
			"video_to_text_ratio": ratio,
			"avg_video_signal":    *visual,
		}), true
	case ratio < 0.5 && verbal != nil && *verbal > 3.5:
		return result(domain.DimInputPreference, domain.InputVerbal, 0.90, evidence{
			"video_to_text_ratio": ratio,
			"avg_text_signal":     *verbal,
		}), true
	default:
		return result(domain.DimInputPreference, domain.Mixed, 0.60, evidence{
			"video_to_text_ratio": ratio,
		}), true
	}
}

func inferComplexityTolerance(w domain.BehavioralWindow) (domain.InferenceResult, bool) {
	if w.LearningVelocity == nil && w.CompletionRate == nil && w.FrustrationEvents == nil {
		return domain.InferenceResult{}, false
	}
	if w.LearningVelocity != nil && w.CompletionRate != nil &&
		*w.LearningVelocity > 0.7 && *w.CompletionRate > 0.8 {
		return result(domain.DimComplexityTolerance, domain.ComplexityHigh, 0.85, evidence{
			"learning_velocity": *w.LearningVelocity,
			"completion_rate":   *w.CompletionRate,
		}), true
	}
	if (w.FrustrationEvents != nil && *w.FrustrationEvents > 5) ||
		(w.CompletionRate != nil && *w.CompletionRate < 0.5) {
		ev := evidence{}
		if w.FrustrationEvents != nil {
			ev["frustration_events"] = float64(*w.FrustrationEvents)
		}
		if w.CompletionRate != nil {
			ev["completion_rate"] = *w.CompletionRate
		}
		return result(domain.DimComplexityTolerance, domain.ComplexityLow, 0.75, ev), true
	}
	return result(domain.DimComplexityTolerance, domain.ComplexityMedium, 0.70, nil), true
}

func inferEngagementStyle(w domain.BehavioralWindow) (domain.InferenceResult, bool) {
	if w.TotalInteractions == 0 {
		return domain.InferenceResult{}, false
	}
	share := float64(w.InteractiveCount) / float64(w.TotalInteractions)
	ev := evidence{
		"interactive_count":  float64(w.InteractiveCount),
		"total_interactions": float64(w.TotalInteractions),
	}
	switch {
	case share > 0.30:
		return result(domain.DimEngagementStyle, domain.EngagementActive, 0.80, ev), true
	case share < 0.10:
		return result(domain.DimEngagementStyle, domain.EngagementPassive, 0.75, ev), true
	default:
		return result(domain.DimEngagementStyle, domain.Mixed, 0.65, ev), true
	}
}

func inferLearningAutonomy(w domain.BehavioralWindow) (domain.InferenceResult, bool) {
	if w.ConceptRevisitRate == nil && w.AvgFocusScore == nil && w.FrustrationEvents == nil {
		return domain.InferenceResult{}, false
	}
	if w.ConceptRevisitRate != nil && w.AvgFocusScore != nil &&
		*w.ConceptRevisitRate < 1.2 && *w.AvgFocusScore > 0.7 {
		return result(domain.DimLearningAutonomy, domain.AutonomyIndependent, 0.80, evidence{
			"concept_revisit_rate": *w.ConceptRevisitRate,
			"avg_focus_score":      *w.AvgFocusScore,
		}), true
	}
	if (w.ConceptRevisitRate != nil && *w.ConceptRevisitRate > 2.0) ||
		(w.FrustrationEvents != nil && *w.FrustrationEvents > 3) {
		ev := evidence{}
		if w.ConceptRevisitRate != nil {
			ev["concept_revisit_rate"] = *w.ConceptRevisitRate
		}
		if w.FrustrationEvents != nil {
			ev["frustration_events"] = float64(*w.FrustrationEvents)
		}
		return result(domain.DimLearningAutonomy, domain.AutonomyGuided, 0.75, ev), true
	}
	return result(domain.DimLearningAutonomy, domain.Mixed, 0.60, nil), true
}

type evidence = map[string]float64

func result(d domain.Dimension, value string, confidence float64, ev evidence) domain.InferenceResult {
	return domain.InferenceResult{Dimension: d, Value: value, Confidence: confidence, Evidence: ev}
}

func coalesce(vals ...*float64) *float64 {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}
