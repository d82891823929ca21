package domain

import "time"

// BehavioralWindow is the derived aggregate over [PeriodStart, PeriodEnd).
// It is never persisted to Postgres; it may be cached briefly. Pointer
// fields distinguish "no signal" (nil) from a measured zero; nil must never
// be coerced to 0 before inference.
type BehavioralWindow struct {
	UserID      string    `json:"user_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// Resource preferences.
	VideoCount                int      `json:"video_count"`
	TextCount                 int      `json:"text_count"`
	InteractiveCount          int      `json:"interactive_count"`
	TotalInteractions         int      `json:"total_interactions"`
	VideoToTextRatio          *float64 `json:"video_to_text_ratio,omitempty"` // video / (video + text)
	AvgVideoCompletion        *float64 `json:"avg_video_completion,omitempty"`
	AvgArticleCompletion      *float64 `json:"avg_article_completion,omitempty"`
	AvgVideoEngagement        *float64 `json:"avg_video_engagement,omitempty"` // 1..5
	AvgTextEngagement         *float64 `json:"avg_text_engagement,omitempty"`  // 1..5
	InteractiveEngagementRate *float64 `json:"interactive_engagement_rate,omitempty"`
	PreferredResourceType     string   `json:"preferred_resource_type,omitempty"`

	// Session patterns.
	TotalSessions          int       `json:"total_sessions"`
	AvgSessionMinutes      *float64  `json:"avg_session_minutes,omitempty"`
	TotalLearningHours     *float64  `json:"total_learning_hours,omitempty"`
	AvgFocusScore          *float64  `json:"avg_focus_score,omitempty"`
	CompletionRate         *float64  `json:"completion_rate,omitempty"`
	FrustrationEvents      *int      `json:"frustration_events,omitempty"`
	HelpRequests           *int      `json:"help_requests,omitempty"`
	UniqueConcepts         int       `json:"unique_concepts"`
	ConceptRevisitRate     *float64  `json:"concept_revisit_rate,omitempty"`
	LearningConsistency    *float64  `json:"learning_consistency,omitempty"`
	PreferredLearningHours []HourBin `json:"preferred_learning_hours,omitempty"`

	// Mastery progression.
	ConceptsTracked     int            `json:"concepts_tracked"`
	MasteryDistribution map[string]int `json:"mastery_distribution,omitempty"`
	LearningVelocity    *float64       `json:"learning_velocity,omitempty"`
	RetentionScore      *float64       `json:"retention_score,omitempty"`
	AvgHoursPerConcept  *float64       `json:"avg_hours_per_concept,omitempty"`
}

// HourBin is one entry of the session start-hour histogram.
type HourBin struct {
	Hour     int `json:"hour"`
	Sessions int `json:"sessions"`
}

// InferenceResult is one rule-engine candidate for one dimension. Evidence
// echoes the window fields that made the rule fire, for audit display only.
type InferenceResult struct {
	Dimension  Dimension          `json:"dimension"`
	Value      string             `json:"value"`
	Confidence float64            `json:"confidence"`
	Evidence   map[string]float64 `json:"evidence,omitempty"`
}
