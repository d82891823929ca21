package services

import (
	"context"
	"testing"

	"github.com/yungbote/cognify-backend/internal/data/repos/cognitive"
	"github.com/yungbote/cognify-backend/internal/data/repos/testutil"
	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/profile"
)

func TestOnboardingService_ProcessOnboardingStoresPriorExperience(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	svc, err := NewOnboardingService(tx, log, cognitive.NewOnboardingRepo(tx, log), cognitive.NewProfileRepo(tx, log))
	if err != nil {
		t.Fatalf("init onboarding service: %v", err)
	}

	u := testutil.SeedUser(t, ctx, tx, "onboarding-experience@test.local")
	res, err := svc.ProcessOnboarding(ctx, u.ID, OnboardingSubmission{
		Responses: map[string]string{
			profile.QLearningMedium: "Watching videos",
			profile.QExperience:     "Complete beginner",
		},
		LearningGoal:          "learn go",
		AvailableHoursPerWeek: 5,
	})
	if err != nil {
		t.Fatalf("process onboarding: %v", err)
	}
	if res.Questionnaire.PriorExperience != "none" {
		t.Fatalf("expected prior experience %q, got %q", "none", res.Questionnaire.PriorExperience)
	}
	if res.Profile == nil || res.Profile.InputPreference != types.InputVisual {
		t.Fatalf("expected seeded visual profile, got %+v", res.Profile)
	}

	stored, err := svc.GetSubmission(ctx, u.ID)
	if err != nil {
		t.Fatalf("get submission: %v", err)
	}
	if stored.PriorExperience != "none" {
		t.Fatalf("expected persisted prior experience %q, got %q", "none", stored.PriorExperience)
	}
}

func TestOnboardingService_ProcessOnboardingClassifiesIntermediate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	svc, err := NewOnboardingService(tx, log, cognitive.NewOnboardingRepo(tx, log), cognitive.NewProfileRepo(tx, log))
	if err != nil {
		t.Fatalf("init onboarding service: %v", err)
	}

	u := testutil.SeedUser(t, ctx, tx, "onboarding-intermediate@test.local")
	res, err := svc.ProcessOnboarding(ctx, u.ID, OnboardingSubmission{
		Responses: map[string]string{
			profile.QExperience: "Intermediate, a couple of years",
		},
	})
	if err != nil {
		t.Fatalf("process onboarding: %v", err)
	}
	if res.Questionnaire.PriorExperience != profile.DifficultyIntermediate {
		t.Fatalf("expected prior experience %q, got %q", profile.DifficultyIntermediate, res.Questionnaire.PriorExperience)
	}
}
