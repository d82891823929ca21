package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningSession) ([]*types.LearningSession, error)
	ListByUserInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.LearningSession, error)
	// DistinctUserIDsSince lists learners with at least one session started at
	// or after the cutoff. The scheduled sweep fans out over this set.
	DistinctUserIDsSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]uuid.UUID, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (r *sessionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.LearningSession) ([]*types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.LearningSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sessionRepo) ListByUserInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.LearningSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.LearningSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND started_at >= ? AND started_at < ?", userID, start, end).
		Order("started_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionRepo) DistinctUserIDsSince(ctx context.Context, tx *gorm.DB, since time.Time) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []uuid.UUID
	if err := transaction.WithContext(ctx).
		Model(&types.LearningSession{}).
		Distinct("user_id").
		Where("started_at >= ?", since).
		Pluck("user_id", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
