package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/user"
	vo "iops/internal/domain/user/valueobjects"
	"iops/internal/infrastructure/auth"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

type AuthHandler struct {
	userRepo   user.Repository
	hasher     *auth.BcryptPasswordHasher
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthHandler(
	userRepo user.Repository,
	hasher *auth.BcryptPasswordHasher,
	jwtService *auth.JWTService,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Tier     string `json:"tier"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if existing != nil {
		utils.ErrorResponse(c, http.StatusConflict, "email already registered")
		return
	}

	email, err := vo.NewEmail(req.Email)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Errorw("failed to hash password", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to register")
		return
	}

	account, err := user.NewUser(email, req.Username, hash)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.userRepo.Create(c.Request.Context(), account); err != nil {
		h.logger.Errorw("failed to create user", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to register")
		return
	}

	token, err := h.jwtService.Generate(account.ID(), account.Tier().String(), account.Role())
	if err != nil {
		h.logger.Errorw("failed to issue token", "error", err, "user_id", account.ID())
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to register")
		return
	}

	utils.CreatedResponse(c, authResponse{Token: token, User: toUserResponse(account)}, "account created")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if account == nil || !account.IsActive() {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.hasher.Verify(req.Password, account.PasswordHash()); err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.jwtService.Generate(account.ID(), account.Tier().String(), account.Role())
	if err != nil {
		h.logger.Errorw("failed to issue token", "error", err, "user_id", account.ID())
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged in", authResponse{Token: token, User: toUserResponse(account)})
}

func toUserResponse(account *user.User) userResponse {
	return userResponse{
		ID:       account.ID(),
		Email:    account.Email().String(),
		Username: account.Username(),
		Tier:     account.Tier().String(),
	}
}
