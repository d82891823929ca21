package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cognify-backend/internal/data/graph"
	"github.com/yungbote/cognify-backend/internal/http/response"
	"github.com/yungbote/cognify-backend/internal/profile"
	"github.com/yungbote/cognify-backend/internal/services"
)

type RecommendationHandler struct {
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GET /recommendations?concept=<name>&limit=<n>
func (rh *RecommendationHandler) PersonalizedPath(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	concept := c.Query("concept")
	if concept == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("concept query param is required"))
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	path, err := rh.recommendationService.PersonalizedPath(c.Request.Context(), userID, concept, limit)
	if err != nil {
		if errors.Is(err, profile.ErrDataUnavailable) {
			response.RespondRetryable(c, http.StatusServiceUnavailable, "data_unavailable", err)
			return
		}
		response.RespondError(c, http.StatusInternalServerError, "recommendation_failed", err)
		return
	}
	response.RespondOK(c, path)
}

// POST /resources
func (rh *RecommendationHandler) AddResource(c *gin.Context) {
	if _, ok := authedUser(c); !ok {
		return
	}
	var req struct {
		ConceptName string                 `json:"concept_name"`
		Resource    graph.LearningResource `json:"resource"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ConceptName == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("concept_name is required"))
		return
	}
	if err := rh.recommendationService.AddResource(c.Request.Context(), req.ConceptName, req.Resource); err != nil {
		if errors.Is(err, profile.ErrDataUnavailable) {
			response.RespondRetryable(c, http.StatusServiceUnavailable, "data_unavailable", err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondCreated(c, req.Resource)
}

// POST /recommendations/feedback
func (rh *RecommendationHandler) RecordFeedback(c *gin.Context) {
	if _, ok := authedUser(c); !ok {
		return
	}
	var req struct {
		ResourceID      string  `json:"resource_id"`
		CompletionRate  float64 `json:"completion_rate"`
		EngagementScore float64 `json:"engagement_score"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.ResourceID == "" {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("resource_id is required"))
		return
	}
	if err := rh.recommendationService.RecordFeedback(c.Request.Context(), req.ResourceID, req.CompletionRate, req.EngagementScore); err != nil {
		response.RespondError(c, http.StatusBadRequest, "feedback_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
