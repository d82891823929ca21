package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/data/graph"
	"github.com/yungbote/cognify-backend/internal/data/repos/telemetry"
	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

// TelemetryService ingests the raw records the engine later aggregates. It
// owns the write path for sessions, interactions and mastery rows; the
// inference core never mutates them.
type TelemetryService interface {
	RecordSessions(ctx context.Context, userID uuid.UUID, rows []*types.LearningSession) ([]*types.LearningSession, error)
	RecordInteractions(ctx context.Context, userID uuid.UUID, rows []*types.ResourceInteraction) ([]*types.ResourceInteraction, error)
	RecordMastery(ctx context.Context, userID uuid.UUID, row *types.ConceptMastery) (*types.ConceptMastery, error)
}

type telemetryService struct {
	db              *gorm.DB
	log             *logger.Logger
	sessionRepo     telemetry.SessionRepo
	interactionRepo telemetry.InteractionRepo
	masteryRepo     telemetry.MasteryRepo
	resourceGraph   graph.ResourceGraph
	analytics       AnalyticsService
}

func NewTelemetryService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo telemetry.SessionRepo,
	interactionRepo telemetry.InteractionRepo,
	masteryRepo telemetry.MasteryRepo,
	resourceGraph graph.ResourceGraph,
	analytics AnalyticsService,
) TelemetryService {
	serviceLog := log.With("service", "TelemetryService")
	return &telemetryService{
		db:              db,
		log:             serviceLog,
		sessionRepo:     sessionRepo,
		interactionRepo: interactionRepo,
		masteryRepo:     masteryRepo,
		resourceGraph:   resourceGraph,
		analytics:       analytics,
	}
}

func (s *telemetryService) RecordSessions(ctx context.Context, userID uuid.UUID, rows []*types.LearningSession) ([]*types.LearningSession, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	for _, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("nil session row")
		}
		row.ID = uuid.New()
		row.UserID = userID
		if row.StartedAt.IsZero() {
			return nil, fmt.Errorf("session started_at required")
		}
	}
	created, err := s.sessionRepo.Create(ctx, nil, rows)
	if err != nil {
		return nil, fmt.Errorf("record sessions: %w", err)
	}
	s.analytics.InvalidateWindows(ctx, userID)
	return created, nil
}

func (s *telemetryService) RecordInteractions(ctx context.Context, userID uuid.UUID, rows []*types.ResourceInteraction) ([]*types.ResourceInteraction, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	for _, row := range rows {
		if row == nil {
			return nil, fmt.Errorf("nil interaction row")
		}
		row.ID = uuid.New()
		row.UserID = userID
		if row.ResourceID == "" || row.ResourceType == "" {
			return nil, fmt.Errorf("interaction resource_id and resource_type required")
		}
		if row.StartedAt.IsZero() {
			return nil, fmt.Errorf("interaction started_at required")
		}
		if row.EngagementScore != nil && (*row.EngagementScore < 1 || *row.EngagementScore > 5) {
			return nil, fmt.Errorf("engagement_score must be within [1,5]")
		}
	}
	created, err := s.interactionRepo.Create(ctx, nil, rows)
	if err != nil {
		return nil, fmt.Errorf("record interactions: %w", err)
	}

	// Fold rated interactions into the graph's rolling resource metrics.
	// Graph writes are best effort; telemetry ingestion already succeeded.
	for _, row := range created {
		if row.CompletionPercentage == nil && row.EngagementScore == nil {
			continue
		}
		completion, engagement := 0.0, 0.0
		if row.CompletionPercentage != nil {
			completion = *row.CompletionPercentage
		}
		if row.EngagementScore != nil {
			engagement = *row.EngagementScore
		}
		if err := s.resourceGraph.UpdateEngagement(ctx, row.ResourceID, completion, engagement); err != nil {
			s.log.Warn("Failed to update resource engagement in graph",
				"resource_id", row.ResourceID, "error", err)
		}
	}

	s.analytics.InvalidateWindows(ctx, userID)
	return created, nil
}

func (s *telemetryService) RecordMastery(ctx context.Context, userID uuid.UUID, row *types.ConceptMastery) (*types.ConceptMastery, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if row == nil || row.ConceptName == "" {
		return nil, fmt.Errorf("concept_name required")
	}
	if row.CurrentLevel == "" {
		row.CurrentLevel = types.MasteryNotStarted
	}

	var saved *types.ConceptMastery
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.masteryRepo.GetByUserAndConcept(ctx, tx, userID, row.ConceptName)
		switch {
		case err == nil:
			existing.CurrentLevel = row.CurrentLevel
			existing.ConfidenceScore = row.ConfidenceScore
			existing.TotalTimeSpentSeconds += row.TotalTimeSpentSeconds
			existing.QuizAttempts += row.QuizAttempts
			if row.QuizSuccessRate != nil {
				existing.QuizSuccessRate = row.QuizSuccessRate
			}
			if row.LearningVelocity != nil {
				existing.LearningVelocity = row.LearningVelocity
			}
			if row.RetentionScore != nil {
				existing.RetentionScore = row.RetentionScore
			}
			now := time.Now().UTC()
			existing.LastPracticedAt = &now
			saved = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			row.ID = uuid.New()
			row.UserID = userID
			now := time.Now().UTC()
			row.FirstEncounteredAt = now
			row.LastPracticedAt = &now
			saved = row
		default:
			return fmt.Errorf("load mastery: %w", err)
		}
		_, err = s.masteryRepo.Upsert(ctx, tx, saved)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.analytics.InvalidateWindows(ctx, userID)
	return saved, nil
}
