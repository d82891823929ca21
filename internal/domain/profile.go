package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CognitiveProfile is the per-learner aggregate the adaptation engine reads
// and writes. Each of the eight dimensions carries a categorical value and a
// confidence in [0,1]. ProfileVersion is the optimistic-concurrency token:
// merges re-read and retry when a concurrent writer bumped it first.
type CognitiveProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	InstructionFlow     string `gorm:"not null;column:instruction_flow" json:"instruction_flow"`
	InputPreference     string `gorm:"not null;column:input_preference" json:"input_preference"`
	EngagementStyle     string `gorm:"not null;column:engagement_style" json:"engagement_style"`
	ConceptType         string `gorm:"not null;column:concept_type" json:"concept_type"`
	LearningAutonomy    string `gorm:"not null;column:learning_autonomy" json:"learning_autonomy"`
	MotivationType      string `gorm:"not null;column:motivation_type" json:"motivation_type"`
	FeedbackPreference  string `gorm:"not null;column:feedback_preference" json:"feedback_preference"`
	ComplexityTolerance string `gorm:"not null;column:complexity_tolerance" json:"complexity_tolerance"`

	InstructionFlowConfidence     float64 `gorm:"not null;default:0.5;column:instruction_flow_confidence" json:"instruction_flow_confidence"`
	InputPreferenceConfidence     float64 `gorm:"not null;default:0.5;column:input_preference_confidence" json:"input_preference_confidence"`
	EngagementStyleConfidence     float64 `gorm:"not null;default:0.5;column:engagement_style_confidence" json:"engagement_style_confidence"`
	ConceptTypeConfidence         float64 `gorm:"not null;default:0.5;column:concept_type_confidence" json:"concept_type_confidence"`
	LearningAutonomyConfidence    float64 `gorm:"not null;default:0.5;column:learning_autonomy_confidence" json:"learning_autonomy_confidence"`
	MotivationTypeConfidence      float64 `gorm:"not null;default:0.5;column:motivation_type_confidence" json:"motivation_type_confidence"`
	FeedbackPreferenceConfidence  float64 `gorm:"not null;default:0.5;column:feedback_preference_confidence" json:"feedback_preference_confidence"`
	ComplexityToleranceConfidence float64 `gorm:"not null;default:0.5;column:complexity_tolerance_confidence" json:"complexity_tolerance_confidence"`

	ProfileVersion   int            `gorm:"not null;default:1;column:profile_version" json:"profile_version"`
	TotalAdaptations int            `gorm:"not null;default:0;column:total_adaptations" json:"total_adaptations"`
	LastUpdated      time.Time      `gorm:"not null;default:now();column:last_updated" json:"last_updated"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CognitiveProfile) TableName() string { return "cognitive_profile" }

// NewDefaultProfile returns the profile created at onboarding or on the
// first inference run, before any evidence has been merged.
func NewDefaultProfile(userID uuid.UUID, now time.Time) *CognitiveProfile {
	return &CognitiveProfile{
		ID:     uuid.New(),
		UserID: userID,

		InstructionFlow:     FlowLinear,
		InputPreference:     Mixed,
		EngagementStyle:     Mixed,
		ConceptType:         Mixed,
		LearningAutonomy:    AutonomyGuided,
		MotivationType:      Mixed,
		FeedbackPreference:  FeedbackImmediate,
		ComplexityTolerance: ComplexityMedium,

		InstructionFlowConfidence:     0.5,
		InputPreferenceConfidence:     0.5,
		EngagementStyleConfidence:     0.5,
		ConceptTypeConfidence:         0.5,
		LearningAutonomyConfidence:    0.5,
		MotivationTypeConfidence:      0.5,
		FeedbackPreferenceConfidence:  0.5,
		ComplexityToleranceConfidence: 0.5,

		ProfileVersion:   1,
		TotalAdaptations: 0,
		LastUpdated:      now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Dimension returns the value/confidence pair for d.
func (p *CognitiveProfile) Dimension(d Dimension) (string, float64) {
	switch d {
	case DimInstructionFlow:
		return p.InstructionFlow, p.InstructionFlowConfidence
	case DimInputPreference:
		return p.InputPreference, p.InputPreferenceConfidence
	case DimEngagementStyle:
		return p.EngagementStyle, p.EngagementStyleConfidence
	case DimConceptType:
		return p.ConceptType, p.ConceptTypeConfidence
	case DimLearningAutonomy:
		return p.LearningAutonomy, p.LearningAutonomyConfidence
	case DimMotivationType:
		return p.MotivationType, p.MotivationTypeConfidence
	case DimFeedbackPreference:
		return p.FeedbackPreference, p.FeedbackPreferenceConfidence
	case DimComplexityTolerance:
		return p.ComplexityTolerance, p.ComplexityToleranceConfidence
	}
	return "", 0
}

// SetDimension overwrites the value/confidence pair for d.
func (p *CognitiveProfile) SetDimension(d Dimension, value string, confidence float64) {
	switch d {
	case DimInstructionFlow:
		p.InstructionFlow, p.InstructionFlowConfidence = value, confidence
	case DimInputPreference:
		p.InputPreference, p.InputPreferenceConfidence = value, confidence
	case DimEngagementStyle:
		p.EngagementStyle, p.EngagementStyleConfidence = value, confidence
	case DimConceptType:
		p.ConceptType, p.ConceptTypeConfidence = value, confidence
	case DimLearningAutonomy:
		p.LearningAutonomy, p.LearningAutonomyConfidence = value, confidence
	case DimMotivationType:
		p.MotivationType, p.MotivationTypeConfidence = value, confidence
	case DimFeedbackPreference:
		p.FeedbackPreference, p.FeedbackPreferenceConfidence = value, confidence
	case DimComplexityTolerance:
		p.ComplexityTolerance, p.ComplexityToleranceConfidence = value, confidence
	}
}
