package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/cognify-backend/internal/http/response"
	"github.com/yungbote/cognify-backend/internal/profile"
	"github.com/yungbote/cognify-backend/internal/requestdata"
	"github.com/yungbote/cognify-backend/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GET /profile
func (ph *ProfileHandler) GetMyProfile(c *gin.Context) {
	p, err := ph.profileService.GetMyProfile(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "profile_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"profile": p})
}

// POST /profile/update
func (ph *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing authenticated user"))
		return
	}
	daysBack := parseDaysBack(c, services.DefaultDaysBack)
	var req struct {
		DaysBack int `json:"days_back"`
	}
	if err := c.ShouldBindJSON(&req); err == nil && req.DaysBack > 0 {
		daysBack = req.DaysBack
	}

	update, err := ph.profileService.UpdateProfile(c.Request.Context(), rd.UserID, daysBack)
	if err != nil {
		var inv *profile.InvariantViolationError
		switch {
		case errors.Is(err, profile.ErrDataUnavailable):
			response.RespondRetryable(c, http.StatusServiceUnavailable, "data_unavailable", err)
		case errors.Is(err, profile.ErrPersistenceConflict):
			response.RespondRetryable(c, http.StatusConflict, "conflict", err)
		case errors.As(err, &inv):
			response.RespondError(c, http.StatusInternalServerError, "invariant_violation", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "update_failed", err)
		}
		return
	}
	response.RespondOK(c, update)
}

func parseDaysBack(c *gin.Context, def int) int {
	raw := c.Query("days_back")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > 365 {
		return 365
	}
	return n
}
