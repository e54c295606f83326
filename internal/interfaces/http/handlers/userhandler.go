package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/user"
	vo "iops/internal/domain/user/valueobjects"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// UserHandler covers admin account operations.
type UserHandler struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUserHandler(userRepo user.Repository, logger logger.Interface) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		logger:   logger,
	}
}

type UpdateTierRequest struct {
	Tier string `json:"tier" binding:"required,tiername"`
}

// UpdateTier moves an account to a new subscription level. Quota changes
// take effect on the next limit check; existing counters are untouched.
func (h *UserHandler) UpdateTier(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.userRepo.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if account == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "user not found")
		return
	}

	if err := account.ChangeTier(vo.Tier(req.Tier)); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.Update(c.Request.Context(), account); err != nil {
		h.logger.Errorw("failed to update user tier", "error", err, "user_id", account.ID())
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to update tier")
		return
	}

	h.logger.Infow("user tier changed", "user_id", account.ID(), "tier", req.Tier)
	utils.SuccessResponse(c, http.StatusOK, "tier updated", toUserResponse(account))
}
