package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LearningSession is one bounded study session, written by the front-end
// instrumentation. The engine only ever reads these rows.
type LearningSession struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	StartedAt       time.Time  `gorm:"not null;index;column:started_at" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	DurationSeconds int        `gorm:"column:duration_seconds" json:"duration_seconds"`

	SessionType string `gorm:"column:session_type" json:"session_type"` // chat, lesson, practice, review
	DeviceType  string `gorm:"column:device_type" json:"device_type"`

	InteractionsCount int            `gorm:"column:interactions_count;default:0" json:"interactions_count"`
	ResourcesViewed   int            `gorm:"column:resources_viewed;default:0" json:"resources_viewed"`
	ConceptsCovered   datatypes.JSON `gorm:"type:jsonb;column:concepts_covered" json:"concepts_covered"` // []string

	FocusScore     *float64 `gorm:"column:focus_score" json:"focus_score,omitempty"`         // 0..1
	CompletionRate *float64 `gorm:"column:completion_rate" json:"completion_rate,omitempty"` // 0..1

	FrustrationIndicators int `gorm:"column:frustration_indicators;default:0" json:"frustration_indicators"`
	HelpRequests          int `gorm:"column:help_requests;default:0" json:"help_requests"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningSession) TableName() string { return "learning_session" }

// ResourceInteraction is one learner/resource engagement, written by the
// instrumentation layer.
type ResourceInteraction struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionID *uuid.UUID `gorm:"type:uuid;index" json:"session_id,omitempty"`

	ResourceID   string `gorm:"not null;column:resource_id" json:"resource_id"` // graph resource id
	ResourceType string `gorm:"not null;index;column:resource_type" json:"resource_type"`
	ConceptName  string `gorm:"index;column:concept_name" json:"concept_name"`

	StartedAt       time.Time  `gorm:"not null;index;column:started_at" json:"started_at"`
	EndedAt         *time.Time `gorm:"column:ended_at" json:"ended_at,omitempty"`
	DurationSeconds int        `gorm:"column:duration_seconds" json:"duration_seconds"`

	CompletionPercentage *float64 `gorm:"column:completion_percentage" json:"completion_percentage,omitempty"`
	EngagementScore      *float64 `gorm:"column:engagement_score" json:"engagement_score,omitempty"` // 1..5

	MarkedAsHelpful   *bool `gorm:"column:marked_as_helpful" json:"marked_as_helpful,omitempty"`
	MarkedAsConfusing *bool `gorm:"column:marked_as_confusing" json:"marked_as_confusing,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ResourceInteraction) TableName() string { return "resource_interaction" }

// ConceptMastery tracks cumulative mastery of one concept by one learner.
// LearningVelocity and RetentionScore are maintained by the assessment
// instrumentation; the engine averages them over a window.
type ConceptMastery struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_concept_mastery_user_concept,unique,priority:1" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ConceptName string    `gorm:"not null;index:idx_concept_mastery_user_concept,unique,priority:2;column:concept_name" json:"concept_name"`

	CurrentLevel    string  `gorm:"not null;index;column:current_level" json:"current_level"`
	ConfidenceScore float64 `gorm:"not null;default:0;column:confidence_score" json:"confidence_score"` // 0..1

	TotalTimeSpentSeconds int        `gorm:"column:total_time_spent_seconds;default:0" json:"total_time_spent_seconds"`
	FirstEncounteredAt    time.Time  `gorm:"not null;default:now();column:first_encountered_at" json:"first_encountered_at"`
	LastPracticedAt       *time.Time `gorm:"index;column:last_practiced_at" json:"last_practiced_at,omitempty"`

	QuizAttempts    int      `gorm:"column:quiz_attempts;default:0" json:"quiz_attempts"`
	QuizSuccessRate *float64 `gorm:"column:quiz_success_rate" json:"quiz_success_rate,omitempty"`

	LearningVelocity *float64 `gorm:"column:learning_velocity" json:"learning_velocity,omitempty"` // rate of improvement, 0..1
	RetentionScore   *float64 `gorm:"column:retention_score" json:"retention_score,omitempty"`     // repeat-assessment retention, 0..1

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ConceptMastery) TableName() string { return "concept_mastery" }

// OnboardingQuestionnaire stores a learner's onboarding submission together
// with the initial profile derived from it.
type OnboardingQuestionnaire struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	LearningGoal             string `gorm:"column:learning_goal" json:"learning_goal"`
	AvailableHoursPerWeek    int    `gorm:"column:available_hours_per_week" json:"available_hours_per_week"`
	PreferredSessionDuration int    `gorm:"column:preferred_session_duration" json:"preferred_session_duration"` // minutes
	PriorExperience          string `gorm:"column:prior_experience" json:"prior_experience"`                     // none, beginner, intermediate, advanced

	RawResponses   datatypes.JSON `gorm:"type:jsonb;column:raw_responses" json:"raw_responses"`
	InitialProfile datatypes.JSON `gorm:"type:jsonb;column:initial_profile" json:"initial_profile"`

	CompletedAt time.Time      `gorm:"not null;default:now();column:completed_at" json:"completed_at"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (OnboardingQuestionnaire) TableName() string { return "onboarding_questionnaire" }
