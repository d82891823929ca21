package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/cognify-backend/internal/pkg/logger"
	"github.com/yungbote/cognify-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Analytics      services.AnalyticsService
	Profile        services.ProfileService
	Telemetry      services.TelemetryService
	Onboarding     services.OnboardingService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	auth := services.NewAuthService(db, log, repos.User, repos.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	user := services.NewUserService(db, log, repos.User)
	analytics := services.NewAnalyticsService(db, log, repos.Session, repos.Interaction, repos.Mastery, clients.WindowCache)
	profile := services.NewProfileService(db, log, repos.Profile, analytics)
	telemetry := services.NewTelemetryService(db, log, repos.Session, repos.Interaction, repos.Mastery, clients.ResourceGraph, analytics)
	recommendation := services.NewRecommendationService(db, log, clients.ResourceGraph, profile)

	onboarding, err := services.NewOnboardingService(db, log, repos.Onboarding, repos.Profile)
	if err != nil {
		return Services{}, err
	}

	return Services{
		Auth:           auth,
		User:           user,
		Analytics:      analytics,
		Profile:        profile,
		Telemetry:      telemetry,
		Onboarding:     onboarding,
		Recommendation: recommendation,
	}, nil
}
