package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/cognify-backend/internal/domain"
	"github.com/yungbote/cognify-backend/internal/http/response"
	"github.com/yungbote/cognify-backend/internal/services"
)

type TelemetryHandler struct {
	telemetryService services.TelemetryService
}

func NewTelemetryHandler(telemetryService services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{telemetryService: telemetryService}
}

// POST /telemetry/sessions
func (th *TelemetryHandler) RecordSessions(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req struct {
		Sessions []*types.LearningSession `json:"sessions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := th.telemetryService.RecordSessions(c.Request.Context(), userID, req.Sessions)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "record_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"sessions": rows})
}

// POST /telemetry/interactions
func (th *TelemetryHandler) RecordInteractions(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req struct {
		Interactions []*types.ResourceInteraction `json:"interactions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rows, err := th.telemetryService.RecordInteractions(c.Request.Context(), userID, req.Interactions)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "record_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"interactions": rows})
}

// POST /telemetry/mastery
func (th *TelemetryHandler) RecordMastery(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req types.ConceptMastery
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := th.telemetryService.RecordMastery(c.Request.Context(), userID, &req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "record_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"mastery": row})
}
