package cognitive

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

// ErrVersionConflict means an optimistic write found the stored
// profile_version already moved past the one it was built from.
var ErrVersionConflict = errors.New("cognitive profile version conflict")

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.CognitiveProfile) (*types.CognitiveProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CognitiveProfile, error)
	// UpdateVersioned persists row only if the stored profile_version still
	// equals expectedVersion. Returns ErrVersionConflict otherwise.
	UpdateVersioned(ctx context.Context, tx *gorm.DB, row *types.CognitiveProfile, expectedVersion int) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, row *types.CognitiveProfile) (*types.CognitiveProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CognitiveProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.CognitiveProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *profileRepo) UpdateVersioned(ctx context.Context, tx *gorm.DB, row *types.CognitiveProfile, expectedVersion int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	res := transaction.WithContext(ctx).
		Model(&types.CognitiveProfile{}).
		Where("user_id = ? AND profile_version = ?", row.UserID, expectedVersion).
		Select(
			"instruction_flow", "input_preference", "engagement_style", "concept_type",
			"learning_autonomy", "motivation_type", "feedback_preference", "complexity_tolerance",
			"instruction_flow_confidence", "input_preference_confidence", "engagement_style_confidence",
			"concept_type_confidence", "learning_autonomy_confidence", "motivation_type_confidence",
			"feedback_preference_confidence", "complexity_tolerance_confidence",
			"profile_version", "total_adaptations", "last_updated", "updated_at",
		).
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}
