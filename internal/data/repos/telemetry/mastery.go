package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type MasteryRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ConceptMastery) (*types.ConceptMastery, error)
	GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) (*types.ConceptMastery, error)
	ListActiveInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.ConceptMastery, error)
}

type masteryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasteryRepo(db *gorm.DB, baseLog *logger.Logger) MasteryRepo {
	repoLog := baseLog.With("repo", "MasteryRepo")
	return &masteryRepo{db: db, log: repoLog}
}

func (r *masteryRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ConceptMastery) (*types.ConceptMastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *masteryRepo) GetByUserAndConcept(ctx context.Context, tx *gorm.DB, userID uuid.UUID, conceptName string) (*types.ConceptMastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ConceptMastery
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND concept_name = ?", userID, conceptName).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *masteryRepo) ListActiveInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) ([]types.ConceptMastery, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []types.ConceptMastery
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND last_practiced_at IS NOT NULL AND last_practiced_at >= ? AND last_practiced_at < ?", userID, start, end).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
