package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/cognify-backend/internal/http/response"
	"github.com/yungbote/cognify-backend/internal/services"
)

type OnboardingHandler struct {
	onboardingService services.OnboardingService
}

func NewOnboardingHandler(onboardingService services.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// GET /onboarding/questionnaire
func (oh *OnboardingHandler) GetQuestionnaire(c *gin.Context) {
	response.RespondOK(c, gin.H{"questions": oh.onboardingService.Questionnaire()})
}

// POST /onboarding/submit
func (oh *OnboardingHandler) Submit(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req services.OnboardingSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	result, err := oh.onboardingService.ProcessOnboarding(c.Request.Context(), userID, req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "onboarding_failed", err)
		return
	}
	response.RespondCreated(c, result)
}

// GET /onboarding/submission
func (oh *OnboardingHandler) GetSubmission(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	submission, err := oh.onboardingService.GetSubmission(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "submission_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"submission": submission})
}
