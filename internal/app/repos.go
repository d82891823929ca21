package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/data/repos/cognitive"
	"github.com/yungbote/cognify-backend/internal/data/repos/identity"
	"github.com/yungbote/cognify-backend/internal/data/repos/telemetry"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type Repos struct {
	User      identity.UserRepo
	UserToken identity.UserTokenRepo

	Profile    cognitive.ProfileRepo
	Onboarding cognitive.OnboardingRepo

	Session     telemetry.SessionRepo
	Interaction telemetry.InteractionRepo
	Mastery     telemetry.MasteryRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      identity.NewUserRepo(db, log),
		UserToken: identity.NewUserTokenRepo(db, log),

		Profile:    cognitive.NewProfileRepo(db, log),
		Onboarding: cognitive.NewOnboardingRepo(db, log),

		Session:     telemetry.NewSessionRepo(db, log),
		Interaction: telemetry.NewInteractionRepo(db, log),
		Mastery:     telemetry.NewMasteryRepo(db, log),
	}
}
