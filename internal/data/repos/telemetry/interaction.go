package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ResourceInteraction) ([]*types.ResourceInteraction, error)
	ListByUserInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.ResourceInteraction, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	repoLog := baseLog.With("repo", "InteractionRepo")
	return &interactionRepo{db: db, log: repoLog}
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ResourceInteraction) ([]*types.ResourceInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ResourceInteraction{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *interactionRepo) ListByUserInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.ResourceInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.ResourceInteraction
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, start, end).
		Order("started_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
