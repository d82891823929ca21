package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/cognify-backend/internal/domain"
)

// Question IDs of the onboarding questionnaire. Derivation keys off these, so
// they are part of the questionnaire contract, not presentation detail.
const (
	QLearningMedium     = "q1_learning_medium"
	QExplanationStyle   = "q2_explanation_style"
	QComplexityComfort  = "q3_complexity_comfort"
	QLearningPace       = "q4_learning_pace"
	QLearningActivity   = "q5_learning_activity"
	QPracticePreference = "q6_practice_preference"
	QLearningPath       = "q7_learning_path"
	QGuidanceLevel      = "q8_guidance_level"
	QConceptPreference  = "q9_concept_preference"
	QFeedbackTiming     = "q10_feedback_timing"
	QMotivation         = "q11_motivation"
	QExperience         = "q12_experience"
)

// DeriveInitialProfile seeds a cognitive profile from questionnaire answers.
// Answers are matched on characteristic phrases of the offered options, so an
// unanswered or free-form response falls through to the mixed fallback of
// each dimension. Questionnaire-derived confidence never exceeds 0.8; real
// behavioral evidence later refines it.
func DeriveInitialProfile(userID uuid.UUID, responses map[string]string, now time.Time) *domain.CognitiveProfile {
	p := domain.NewDefaultProfile(userID, now)

	q1, q2 := responses[QLearningMedium], responses[QExplanationStyle]
	switch {
	case contains(q1, "video") || contains(q2, "diagrams"):
		p.SetDimension(domain.DimInputPreference, domain.InputVisual, 0.75)
	case contains(q1, "written") || contains(q2, "written"):
		p.SetDimension(domain.DimInputPreference, domain.InputVerbal, 0.75)
	default:
		p.SetDimension(domain.DimInputPreference, domain.Mixed, 0.6)
	}

	q3, q4 := responses[QComplexityComfort], responses[QLearningPace]
	switch {
	case contains(q3, "excited") || contains(q4, "fast"):
		p.SetDimension(domain.DimComplexityTolerance, domain.ComplexityHigh, 0.8)
	case contains(q3, "overwhelmed") || contains(q4, "slow"):
		p.SetDimension(domain.DimComplexityTolerance, domain.ComplexityLow, 0.8)
	default:
		p.SetDimension(domain.DimComplexityTolerance, domain.ComplexityMedium, 0.7)
	}

	q5, q6 := responses[QLearningActivity], responses[QPracticePreference]
	switch {
	case contains(q5, "doing") || contains(q6, "immediately try"):
		p.SetDimension(domain.DimEngagementStyle, domain.EngagementActive, 0.8)
	case contains(q5, "watching") || contains(q6, "review more"):
		p.SetDimension(domain.DimEngagementStyle, domain.EngagementPassive, 0.75)
	default:
		p.SetDimension(domain.DimEngagementStyle, domain.Mixed, 0.65)
	}

	q7 := responses[QLearningPath]
	switch {
	case contains(q7, "step-by-step"):
		p.SetDimension(domain.DimInstructionFlow, domain.FlowLinear, 0.8)
	case contains(q7, "jump around"):
		p.SetDimension(domain.DimInstructionFlow, domain.FlowExploratory, 0.8)
	default:
		p.SetDimension(domain.DimInstructionFlow, domain.Mixed, 0.65)
	}

	q8 := responses[QGuidanceLevel]
	switch {
	case contains(q8, "clear guidance"):
		p.SetDimension(domain.DimLearningAutonomy, domain.AutonomyGuided, 0.75)
	case contains(q8, "freedom to explore"):
		p.SetDimension(domain.DimLearningAutonomy, domain.AutonomyIndependent, 0.75)
	default:
		p.SetDimension(domain.DimLearningAutonomy, domain.Mixed, 0.6)
	}

	q9 := responses[QConceptPreference]
	switch {
	case contains(q9, "concrete"):
		p.SetDimension(domain.DimConceptType, domain.ConceptConcrete, 0.75)
	case contains(q9, "abstract"):
		p.SetDimension(domain.DimConceptType, domain.ConceptAbstract, 0.75)
	default:
		p.SetDimension(domain.DimConceptType, domain.Mixed, 0.6)
	}

	q10 := responses[QFeedbackTiming]
	switch {
	case contains(q10, "immediately"):
		p.SetDimension(domain.DimFeedbackPreference, domain.FeedbackImmediate, 0.7)
	case contains(q10, "after completing"):
		p.SetDimension(domain.DimFeedbackPreference, domain.FeedbackDelayed, 0.7)
	default:
		p.SetDimension(domain.DimFeedbackPreference, domain.Mixed, 0.6)
	}

	q11 := responses[QMotivation]
	switch {
	case contains(q11, "curiosity"):
		p.SetDimension(domain.DimMotivationType, domain.MotivationIntrinsic, 0.7)
	case contains(q11, "career"):
		p.SetDimension(domain.DimMotivationType, domain.MotivationExtrinsic, 0.7)
	default:
		p.SetDimension(domain.DimMotivationType, domain.Mixed, 0.6)
	}

	return p
}

// ExperienceLevel classifies the self-reported programming experience answer.
func ExperienceLevel(responses map[string]string) string {
	answer := responses[QExperience]
	switch {
	case contains(answer, "complete beginner"):
		return "none"
	case contains(answer, "beginner"):
		return DifficultyBeginner
	case contains(answer, "intermediate"):
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}

func contains(answer, phrase string) bool {
	return strings.Contains(strings.ToLower(answer), phrase)
}
