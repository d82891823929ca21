package app

import (
	"github.com/gin-gonic/gin"

	apihttp "github.com/yungbote/cognify-backend/internal/http"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return apihttp.NewRouter(apihttp.RouterConfig{
		Log: log,

		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,

		ProfileHandler:        handlers.Profile,
		AnalyticsHandler:      handlers.Analytics,
		TelemetryHandler:      handlers.Telemetry,
		OnboardingHandler:     handlers.Onboarding,
		RecommendationHandler: handlers.Recommendation,

		HealthHandler: handlers.Health,
	})
}
