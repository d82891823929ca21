package cognitive

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type OnboardingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.OnboardingQuestionnaire) (*types.OnboardingQuestionnaire, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.OnboardingQuestionnaire, error)
}

type onboardingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOnboardingRepo(db *gorm.DB, baseLog *logger.Logger) OnboardingRepo {
	repoLog := baseLog.With("repo", "OnboardingRepo")
	return &onboardingRepo{db: db, log: repoLog}
}

func (r *onboardingRepo) Create(ctx context.Context, tx *gorm.DB, row *types.OnboardingQuestionnaire) (*types.OnboardingQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *onboardingRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.OnboardingQuestionnaire, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.OnboardingQuestionnaire
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
