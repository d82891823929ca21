package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/data/repos/cognitive"
	"github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/profile"
	"github.com/yungbote/cognify-backend/internal/requestdata"
)

// ProfileUpdate is what a merge run returns: the persisted profile plus the
// evidence that drove it, for audit display.
type ProfileUpdate struct {
	Profile  *domain.CognitiveProfile `json:"profile"`
	Evidence []domain.InferenceResult `json:"evidence"`
	Changed  bool                     `json:"changed"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.CognitiveProfile, error)
	GetMyProfile(ctx context.Context) (*domain.CognitiveProfile, error)
	// UpdateProfile runs aggregate, infer and merge for the trailing daysBack
	// days and persists the result under an optimistic version check.
	UpdateProfile(ctx context.Context, userID uuid.UUID, daysBack int) (*ProfileUpdate, error)
	// EnsureProfile creates the default profile when none exists yet.
	EnsureProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.CognitiveProfile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo cognitive.ProfileRepo
	analytics   AnalyticsService
}

func NewProfileService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo cognitive.ProfileRepo,
	analytics AnalyticsService,
) ProfileService {
	serviceLog := log.With("service", "ProfileService")
	return &profileService{
		db:          db,
		log:         serviceLog,
		profileRepo: profileRepo,
		analytics:   analytics,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.CognitiveProfile, error) {
	p, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.EnsureProfile(ctx, nil, userID)
	}
	return p, err
}

func (s *profileService) GetMyProfile(ctx context.Context) (*domain.CognitiveProfile, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no authenticated user in context")
	}
	return s.GetProfile(ctx, rd.UserID)
}

func (s *profileService) EnsureProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.CognitiveProfile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, tx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p := domain.NewDefaultProfile(userID, time.Now().UTC())
	return s.profileRepo.Create(ctx, tx, p)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, daysBack int) (*ProfileUpdate, error) {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}

	// Aggregation and inference run before any read of the profile row; a
	// store failure here aborts with nothing written.
	window, err := s.analytics.Window(ctx, userID, daysBack)
	if err != nil {
		return nil, err
	}
	results := profile.Infer(window)
	if len(results) == 0 {
		s.log.Debug("Skipping merge candidates", "user_id", userID, "reason", profile.ErrInsufficientSignal)
	}

	// Read-merge-write under an optimistic version check. A concurrent
	// writer (manual trigger racing the scheduled sweep) costs one retry
	// with a fresh read; a second loss surfaces as a retryable conflict.
	for attempt := 0; attempt < 2; attempt++ {
		p, err := s.EnsureProfile(ctx, nil, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: load profile: %v", profile.ErrDataUnavailable, err)
		}
		expectedVersion := p.ProfileVersion

		changed, err := profile.Merge(p, results, profile.MergeOptions{})
		if err != nil {
			return nil, err
		}
		if !changed {
			return &ProfileUpdate{Profile: p, Evidence: results, Changed: false}, nil
		}

		err = s.profileRepo.UpdateVersioned(ctx, nil, p, expectedVersion)
		if errors.Is(err, cognitive.ErrVersionConflict) {
			s.log.Warn("Profile version conflict, retrying with fresh read",
				"user_id", userID, "expected_version", expectedVersion, "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("persist profile: %w", err)
		}
		return &ProfileUpdate{Profile: p, Evidence: results, Changed: true}, nil
	}
	return nil, profile.ErrPersistenceConflict
}
