package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usageapp "iops/internal/application/usage"
	"iops/internal/interfaces/http/middleware"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// UsageHandler exposes the metering endpoints: the per-user dashboard
// snapshot and the operator-only manual reset.
type UsageHandler struct {
	usageService *usageapp.Service
	logger       logger.Interface
}

func NewUsageHandler(usageService *usageapp.Service, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger,
	}
}

// GetStats returns the authenticated user's current-month usage snapshot.
func (h *UsageHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	stats, err := h.usageService.GetUsageStats(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", stats)
}

type resetResponse struct {
	AffectedUsers int64 `json:"affected_users"`
}

// ResetMonthlyUsage triggers the monthly counter reset out of schedule.
// Idempotent: a second immediate call reports zero affected users.
func (h *UsageHandler) ResetMonthlyUsage(c *gin.Context) {
	affected, err := h.usageService.ResetMonthlyUsage(c.Request.Context())
	if err != nil {
		h.logger.Errorw("manual usage reset failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "monthly usage reset completed", resetResponse{AffectedUsers: affected})
}
