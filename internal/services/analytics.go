package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/cognify-backend/internal/clients/redis"
	"github.com/yungbote/cognify-backend/internal/data/repos/telemetry"
	"github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/profile"
)

const DefaultDaysBack = 30

type AnalyticsService interface {
	// Window aggregates the trailing daysBack days of telemetry. Recent
	// results are served from the cache when one is configured.
	Window(ctx context.Context, userID uuid.UUID, daysBack int) (domain.BehavioralWindow, error)
	ResourcePreferences(ctx context.Context, userID uuid.UUID, daysBack int) (ResourcePreferencesView, error)
	LearningPatterns(ctx context.Context, userID uuid.UUID, daysBack int) (LearningPatternsView, error)
	MasteryProgression(ctx context.Context, userID uuid.UUID, daysBack int) (MasteryProgressionView, error)
	InvalidateWindows(ctx context.Context, userID uuid.UUID)
}

type ResourcePreferencesView struct {
	PeriodStart               time.Time         `json:"period_start"`
	PeriodEnd                 time.Time         `json:"period_end"`
	VideoCount                int               `json:"video_count"`
	TextCount                 int               `json:"text_count"`
	InteractiveCount          int               `json:"interactive_count"`
	TotalInteractions         int               `json:"total_interactions"`
	VideoToTextRatio          *float64          `json:"video_to_text_ratio"`
	AvgVideoCompletion        *float64          `json:"avg_video_completion"`
	AvgArticleCompletion      *float64          `json:"avg_article_completion"`
	AvgVideoEngagement        *float64          `json:"avg_video_engagement"`
	AvgTextEngagement         *float64          `json:"avg_text_engagement"`
	InteractiveEngagementRate *float64          `json:"interactive_engagement_rate"`
	PreferredResourceType     string            `json:"preferred_resource_type"`
}

type LearningPatternsView struct {
	PeriodStart            time.Time        `json:"period_start"`
	PeriodEnd              time.Time        `json:"period_end"`
	TotalSessions          int              `json:"total_sessions"`
	AvgSessionMinutes      *float64         `json:"avg_session_duration_minutes"`
	TotalLearningHours     *float64         `json:"total_learning_time_hours"`
	PreferredLearningHours []domain.HourBin `json:"preferred_learning_hours"`
	AvgFocusScore          *float64         `json:"avg_focus_score"`
	CompletionRate         *float64         `json:"avg_completion_rate"`
	FrustrationEvents      *int             `json:"frustration_events"`
	HelpRequests           *int             `json:"help_requests"`
	UniqueConcepts         int              `json:"unique_concepts_explored"`
	ConceptRevisitRate     *float64         `json:"concept_revisit_rate"`
	LearningConsistency    *float64         `json:"learning_consistency"`
}

type MasteryProgressionView struct {
	PeriodStart         time.Time      `json:"period_start"`
	PeriodEnd           time.Time      `json:"period_end"`
	ConceptsTracked     int            `json:"total_concepts_tracked"`
	MasteryDistribution map[string]int `json:"mastery_distribution"`
	LearningVelocity    *float64       `json:"avg_learning_velocity"`
	RetentionScore      *float64       `json:"avg_retention_score"`
	AvgHoursPerConcept  *float64       `json:"avg_time_per_concept_hours"`
}

type analyticsService struct {
	db              *gorm.DB
	log             *logger.Logger
	sessionRepo     telemetry.SessionRepo
	interactionRepo telemetry.InteractionRepo
	masteryRepo     telemetry.MasteryRepo
	cache           redisclient.WindowCache
}

func NewAnalyticsService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo telemetry.SessionRepo,
	interactionRepo telemetry.InteractionRepo,
	masteryRepo telemetry.MasteryRepo,
	cache redisclient.WindowCache,
) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		db:              db,
		log:             serviceLog,
		sessionRepo:     sessionRepo,
		interactionRepo: interactionRepo,
		masteryRepo:     masteryRepo,
		cache:           cache,
	}
}

func (s *analyticsService) Window(ctx context.Context, userID uuid.UUID, daysBack int) (domain.BehavioralWindow, error) {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, userID.String(), daysBack); ok {
			return *cached, nil
		}
	}

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -daysBack)

	sessions, err := s.sessionRepo.ListByUserInWindow(ctx, nil, userID, start, end)
	if err != nil {
		return domain.BehavioralWindow{}, fmt.Errorf("%w: list sessions: %v", profile.ErrDataUnavailable, err)
	}
	interactions, err := s.interactionRepo.ListByUserInWindow(ctx, nil, userID, start, end)
	if err != nil {
		return domain.BehavioralWindow{}, fmt.Errorf("%w: list interactions: %v", profile.ErrDataUnavailable, err)
	}
	masteries, err := s.masteryRepo.ListActiveInWindow(ctx, nil, userID, start, end)
	if err != nil {
		return domain.BehavioralWindow{}, fmt.Errorf("%w: list masteries: %v", profile.ErrDataUnavailable, err)
	}

	w := profile.BuildWindow(userID.String(), start, end, sessions, interactions, masteries)
	if s.cache != nil {
		s.cache.Set(ctx, w, daysBack)
	}
	return w, nil
}

func (s *analyticsService) ResourcePreferences(ctx context.Context, userID uuid.UUID, daysBack int) (ResourcePreferencesView, error) {
	w, err := s.Window(ctx, userID, daysBack)
	if err != nil {
		return ResourcePreferencesView{}, err
	}
	return ResourcePreferencesView{
		PeriodStart:               w.PeriodStart,
		PeriodEnd:                 w.PeriodEnd,
		VideoCount:                w.VideoCount,
		TextCount:                 w.TextCount,
		InteractiveCount:          w.InteractiveCount,
		TotalInteractions:         w.TotalInteractions,
		VideoToTextRatio:          w.VideoToTextRatio,
		AvgVideoCompletion:        w.AvgVideoCompletion,
		AvgArticleCompletion:      w.AvgArticleCompletion,
		AvgVideoEngagement:        w.AvgVideoEngagement,
		AvgTextEngagement:         w.AvgTextEngagement,
		InteractiveEngagementRate: w.InteractiveEngagementRate,
		PreferredResourceType:     w.PreferredResourceType,
	}, nil
}

func (s *analyticsService) LearningPatterns(ctx context.Context, userID uuid.UUID, daysBack int) (LearningPatternsView, error) {
	w, err := s.Window(ctx, userID, daysBack)
	if err != nil {
		return LearningPatternsView{}, err
	}
	return LearningPatternsView{
		PeriodStart:            w.PeriodStart,
		PeriodEnd:              w.PeriodEnd,
		TotalSessions:          w.TotalSessions,
		AvgSessionMinutes:      w.AvgSessionMinutes,
		TotalLearningHours:     w.TotalLearningHours,
		PreferredLearningHours: w.PreferredLearningHours,
		AvgFocusScore:          w.AvgFocusScore,
		CompletionRate:         w.CompletionRate,
		FrustrationEvents:      w.FrustrationEvents,
		HelpRequests:           w.HelpRequests,
		UniqueConcepts:         w.UniqueConcepts,
		ConceptRevisitRate:     w.ConceptRevisitRate,
		LearningConsistency:    w.LearningConsistency,
	}, nil
}

func (s *analyticsService) MasteryProgression(ctx context.Context, userID uuid.UUID, daysBack int) (MasteryProgressionView, error) {
	w, err := s.Window(ctx, userID, daysBack)
	if err != nil {
		return MasteryProgressionView{}, err
	}
	return MasteryProgressionView{
		PeriodStart:         w.PeriodStart,
		PeriodEnd:           w.PeriodEnd,
		ConceptsTracked:     w.ConceptsTracked,
		MasteryDistribution: w.MasteryDistribution,
		LearningVelocity:    w.LearningVelocity,
		RetentionScore:      w.RetentionScore,
		AvgHoursPerConcept:  w.AvgHoursPerConcept,
	}, nil
}

func (s *analyticsService) InvalidateWindows(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID.String())
	}
}
