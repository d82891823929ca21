package app

import (
	"github.com/yungbote/cognify-backend/internal/http/handlers"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Profile        *handlers.ProfileHandler
	Analytics      *handlers.AnalyticsHandler
	Telemetry      *handlers.TelemetryHandler
	Onboarding     *handlers.OnboardingHandler
	Recommendation *handlers.RecommendationHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         handlers.NewHealthHandler(),
		Auth:           handlers.NewAuthHandler(services.Auth),
		User:           handlers.NewUserHandler(services.User),
		Profile:        handlers.NewProfileHandler(services.Profile),
		Analytics:      handlers.NewAnalyticsHandler(services.Analytics),
		Telemetry:      handlers.NewTelemetryHandler(services.Telemetry),
		Onboarding:     handlers.NewOnboardingHandler(services.Onboarding),
		Recommendation: handlers.NewRecommendationHandler(services.Recommendation),
	}
}
