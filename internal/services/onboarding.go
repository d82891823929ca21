package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/data/repos/cognitive"
	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/profile"
)

//go:embed questionnaire.yaml
var questionnaireYAML []byte

type QuestionnaireQuestion struct {
	ID        string   `yaml:"id" json:"id"`
	Text      string   `yaml:"text" json:"question_text"`
	Type      string   `yaml:"type" json:"question_type"`
	Dimension string   `yaml:"dimension" json:"cognitive_dimension"`
	Weight    float64  `yaml:"weight" json:"weight"`
	Options   []string `yaml:"options" json:"options"`
}

type questionnaireDoc struct {
	Questions []QuestionnaireQuestion `yaml:"questions"`
}

// OnboardingSubmission is a learner's completed questionnaire.
type OnboardingSubmission struct {
	Responses                map[string]string `json:"responses"`
	LearningGoal             string            `json:"learning_goal"`
	AvailableHoursPerWeek    int               `json:"available_hours_per_week"`
	PreferredSessionDuration int               `json:"preferred_session_duration"`
}

type OnboardingResult struct {
	Questionnaire *types.OnboardingQuestionnaire `json:"questionnaire"`
	Profile       *types.CognitiveProfile        `json:"profile"`
}

type OnboardingService interface {
	Questionnaire() []QuestionnaireQuestion
	// ProcessOnboarding stores the submission and seeds the learner's
	// initial cognitive profile from it, atomically.
	ProcessOnboarding(ctx context.Context, userID uuid.UUID, submission OnboardingSubmission) (*OnboardingResult, error)
	GetSubmission(ctx context.Context, userID uuid.UUID) (*types.OnboardingQuestionnaire, error)
}

type onboardingService struct {
	db             *gorm.DB
	log            *logger.Logger
	onboardingRepo cognitive.OnboardingRepo
	profileRepo    cognitive.ProfileRepo
	questions      []QuestionnaireQuestion
}

func NewOnboardingService(
	db *gorm.DB,
	log *logger.Logger,
	onboardingRepo cognitive.OnboardingRepo,
	profileRepo cognitive.ProfileRepo,
) (OnboardingService, error) {
	serviceLog := log.With("service", "OnboardingService")

	var doc questionnaireDoc
	if err := yaml.Unmarshal(questionnaireYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse questionnaire definition: %w", err)
	}
	if len(doc.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire definition has no questions")
	}

	return &onboardingService{
		db:             db,
		log:            serviceLog,
		onboardingRepo: onboardingRepo,
		profileRepo:    profileRepo,
		questions:      doc.Questions,
	}, nil
}

func (s *onboardingService) Questionnaire() []QuestionnaireQuestion {
	return s.questions
}

func (s *onboardingService) GetSubmission(ctx context.Context, userID uuid.UUID) (*types.OnboardingQuestionnaire, error) {
	return s.onboardingRepo.GetByUserID(ctx, nil, userID)
}

func (s *onboardingService) ProcessOnboarding(ctx context.Context, userID uuid.UUID, submission OnboardingSubmission) (*OnboardingResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	if len(submission.Responses) == 0 {
		return nil, fmt.Errorf("questionnaire responses required")
	}

	if _, err := s.onboardingRepo.GetByUserID(ctx, nil, userID); err == nil {
		return nil, fmt.Errorf("onboarding already completed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing onboarding: %w", err)
	}

	now := time.Now().UTC()
	initialProfile := profile.DeriveInitialProfile(userID, submission.Responses, now)

	rawResponses, err := json.Marshal(submission.Responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}
	profileSnapshot, err := json.Marshal(initialProfile)
	if err != nil {
		return nil, fmt.Errorf("encode initial profile: %w", err)
	}

	record := &types.OnboardingQuestionnaire{
		ID:                       uuid.New(),
		UserID:                   userID,
		LearningGoal:             submission.LearningGoal,
		AvailableHoursPerWeek:    submission.AvailableHoursPerWeek,
		PreferredSessionDuration: submission.PreferredSessionDuration,
		PriorExperience:          profile.ExperienceLevel(submission.Responses),
		RawResponses:             datatypes.JSON(rawResponses),
		InitialProfile:           datatypes.JSON(profileSnapshot),
		CompletedAt:              now,
	}

	var result OnboardingResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, cErr := s.onboardingRepo.Create(ctx, tx, record)
		if cErr != nil {
			return fmt.Errorf("store onboarding submission: %w", cErr)
		}
		result.Questionnaire = created

		// A learner who already has an inferred profile keeps it; the
		// questionnaire only seeds absent profiles.
		existing, pErr := s.profileRepo.GetByUserID(ctx, tx, userID)
		switch {
		case pErr == nil:
			result.Profile = existing
			return nil
		case errors.Is(pErr, gorm.ErrRecordNotFound):
			createdProfile, cpErr := s.profileRepo.Create(ctx, tx, initialProfile)
			if cpErr != nil {
				return fmt.Errorf("create initial profile: %w", cpErr)
			}
			result.Profile = createdProfile
			return nil
		default:
			return fmt.Errorf("load profile: %w", pErr)
		}
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
