package profile

import "github.com/yungbote/cognify-backend/internal/domain"

// ResourceDescriptor carries the metadata of one learning resource as the
// recommendation consumer sees it.
type ResourceDescriptor struct {
	LearningStyle   string
	DifficultyLevel string
	// EngagementScore is the resource's historical rating on a 1..5 scale.
	EngagementScore float64
}

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// PreferredDifficulty maps the learner's complexity tolerance onto resource
// difficulty levels. Unknown or mixed tolerance lands on intermediate.
func PreferredDifficulty(complexityTolerance string) string {
	switch complexityTolerance {
	case domain.ComplexityLow:
		return DifficultyBeginner
	case domain.ComplexityHigh:
		return DifficultyAdvanced
	default:
		return DifficultyIntermediate
	}
}

// StyleMatch scores how well a resource's declared style fits the learner's
// input preference: exact match 1.0, mixed resources 0.7, everything else 0.3.
func StyleMatch(learnerStyle, resourceStyle string) float64 {
	switch {
	case resourceStyle == learnerStyle:
		return 1.0
	case resourceStyle == domain.Mixed:
		return 0.7
	default:
		return 0.3
	}
}

// DifficultyMatch scores a resource's difficulty against the preferred level:
// exact 1.0, one step below 0.7, everything else 0.5.
func DifficultyMatch(preferred, resourceLevel string) float64 {
	switch {
	case resourceLevel == preferred:
		return 1.0
	case resourceLevel == DifficultyBeginner && preferred == DifficultyIntermediate:
		return 0.7
	case resourceLevel == DifficultyIntermediate && preferred == DifficultyAdvanced:
		return 0.7
	default:
		return 0.5
	}
}

// MatchScore combines style fit, difficulty fit and the resource's own
// engagement history. The published weights sum to 1.2, so scores above 1.0
// are possible; the formula is kept as published rather than renormalized.
func MatchScore(p *domain.CognitiveProfile, r ResourceDescriptor) float64 {
	style, _ := p.Dimension(domain.DimInputPreference)
	tolerance, _ := p.Dimension(domain.DimComplexityTolerance)

	engagement := r.EngagementScore / 5.0
	if engagement < 0 {
		engagement = 0
	} else if engagement > 1 {
		engagement = 1
	}

	return StyleMatch(style, r.LearningStyle)*0.6 +
		DifficultyMatch(PreferredDifficulty(tolerance), r.DifficultyLevel)*0.4 +
		engagement*0.2
}
