package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cognify-backend/internal/http/response"
	"github.com/yungbote/cognify-backend/internal/profile"
	"github.com/yungbote/cognify-backend/internal/requestdata"
	"github.com/yungbote/cognify-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GET /analytics/resource-preferences
func (ah *AnalyticsHandler) ResourcePreferences(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	view, err := ah.analyticsService.ResourcePreferences(c.Request.Context(), userID, parseDaysBack(c, services.DefaultDaysBack))
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /analytics/learning-patterns
func (ah *AnalyticsHandler) LearningPatterns(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	view, err := ah.analyticsService.LearningPatterns(c.Request.Context(), userID, parseDaysBack(c, services.DefaultDaysBack))
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /analytics/mastery-progression
func (ah *AnalyticsHandler) MasteryProgression(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	view, err := ah.analyticsService.MasteryProgression(c.Request.Context(), userID, parseDaysBack(c, services.DefaultDaysBack))
	if err != nil {
		respondAnalyticsError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func authedUser(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing authenticated user"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func respondAnalyticsError(c *gin.Context, err error) {
	if errors.Is(err, profile.ErrDataUnavailable) {
		response.RespondRetryable(c, http.StatusServiceUnavailable, "data_unavailable", err)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "analytics_failed", err)
}
