package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/chat"
	"iops/internal/interfaces/http/middleware"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

const defaultChatHistoryLimit = 50

// assistantPlaceholderReply stands in for model inference, which runs in a
// separate service and posts its answer asynchronously.
const assistantPlaceholderReply = "Your message has been received and is being analyzed."

// ChatHandler records AI conversation messages. Only the user-sent message
// is metered; the route-level usage middleware has already admitted the
// request by the time Create runs.
type ChatHandler struct {
	chatRepo chat.Repository
	logger   logger.Interface
}

func NewChatHandler(chatRepo chat.Repository, logger logger.Interface) *ChatHandler {
	return &ChatHandler{
		chatRepo: chatRepo,
		logger:   logger,
	}
}

type CreateMessageRequest struct {
	DatasetID uint   `json:"dataset_id"`
	Content   string `json:"content" binding:"required"`
}

type messageResponse struct {
	ID        uint      `json:"id"`
	DatasetID uint      `json:"dataset_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *ChatHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	message, err := chat.NewMessage(userID, req.DatasetID, chat.RoleUser, req.Content)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.chatRepo.Create(c.Request.Context(), message); err != nil {
		h.logger.Errorw("failed to create chat message", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create message")
		return
	}

	// The acknowledgement is stored but not metered; only user messages
	// count against the quota.
	reply, err := chat.NewMessage(userID, req.DatasetID, chat.RoleAssistant, assistantPlaceholderReply)
	if err == nil {
		if err := h.chatRepo.Create(c.Request.Context(), reply); err != nil {
			h.logger.Errorw("failed to store assistant reply", "error", err, "user_id", userID)
		}
	}

	utils.CreatedResponse(c, toMessageResponse(message))
}

func (h *ChatHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	messages, err := h.chatRepo.ListByUser(c.Request.Context(), userID, defaultChatHistoryLimit)
	if err != nil {
		h.logger.Errorw("failed to list chat messages", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list messages")
		return
	}

	out := make([]messageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, toMessageResponse(m))
	}

	utils.SuccessResponse(c, http.StatusOK, "", out)
}

func toMessageResponse(m *chat.Message) messageResponse {
	return messageResponse{
		ID:        m.ID(),
		DatasetID: m.DatasetID(),
		Role:      string(m.Role()),
		Content:   m.Content(),
		CreatedAt: m.CreatedAt(),
	}
}
