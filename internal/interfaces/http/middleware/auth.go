package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/user"
	"iops/internal/infrastructure/auth"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// Context keys populated by the auth middleware.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserTier = "user_tier"
	ContextKeyUserRole = "user_role"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserTier, claims.Tier)
		c.Set(ContextKeyUserRole, string(claims.Role))

		c.Next()
	}
}

// RequireAdmin allows only operator accounts through. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextKeyUserRole)
		if role != string(user.RoleAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID set by RequireAuth.
func UserIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
