package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/cognify-backend/internal/http/handlers"
	httpMW "github.com/yungbote/cognify-backend/internal/http/middleware"
	"github.com/yungbote/cognify-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	ProfileHandler        *httpH.ProfileHandler
	AnalyticsHandler      *httpH.AnalyticsHandler
	TelemetryHandler      *httpH.TelemetryHandler
	OnboardingHandler     *httpH.OnboardingHandler
	RecommendationHandler *httpH.RecommendationHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("cognify"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Questionnaire is public so clients can render it pre-signup.
		if cfg.OnboardingHandler != nil {
			api.GET("/onboarding/questionnaire", cfg.OnboardingHandler.GetQuestionnaire)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Cognitive profile
		if cfg.ProfileHandler != nil {
			protected.GET("/profile", cfg.ProfileHandler.GetMyProfile)
			protected.POST("/profile/update", cfg.ProfileHandler.UpdateMyProfile)
		}

		// Behavioral analytics
		if cfg.AnalyticsHandler != nil {
			protected.GET("/analytics/resource-preferences", cfg.AnalyticsHandler.ResourcePreferences)
			protected.GET("/analytics/learning-patterns", cfg.AnalyticsHandler.LearningPatterns)
			protected.GET("/analytics/mastery-progression", cfg.AnalyticsHandler.MasteryProgression)
		}

		// Telemetry ingest
		if cfg.TelemetryHandler != nil {
			protected.POST("/telemetry/sessions", cfg.TelemetryHandler.RecordSessions)
			protected.POST("/telemetry/interactions", cfg.TelemetryHandler.RecordInteractions)
			protected.POST("/telemetry/mastery", cfg.TelemetryHandler.RecordMastery)
		}

		// Onboarding
		if cfg.OnboardingHandler != nil {
			protected.POST("/onboarding/submit", cfg.OnboardingHandler.Submit)
			protected.GET("/onboarding/submission", cfg.OnboardingHandler.GetSubmission)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.GET("/recommendations", cfg.RecommendationHandler.PersonalizedPath)
			protected.POST("/recommendations/feedback", cfg.RecommendationHandler.RecordFeedback)
			protected.POST("/resources", cfg.RecommendationHandler.AddResource)
		}
	}

	return r
}
