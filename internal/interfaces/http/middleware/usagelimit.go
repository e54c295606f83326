package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usageapp "iops/internal/application/usage"
	"iops/internal/domain/usage"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// UsageLimitErrorCode is the machine-readable error type clients switch on
// to render an upgrade prompt.
const UsageLimitErrorCode = "USAGE_LIMIT_EXCEEDED"

// quotaDenialDetails is the structured payload accompanying a 403 quota
// denial.
type quotaDenialDetails struct {
	ResourceType string `json:"resource_type"`
	Tier         string `json:"tier"`
	UpgradeURL   string `json:"upgrade_url"`
}

// UsageLimitMiddleware gates metered endpoints on the monthly quota and
// records consumption after the handler succeeds. The check and the
// increment are two separate store round trips; concurrent requests may
// slightly overshoot the cap, which the soft-quota design accepts.
type UsageLimitMiddleware struct {
	usageService *usageapp.Service
	upgradeURL   string
	logger       logger.Interface
}

func NewUsageLimitMiddleware(usageService *usageapp.Service, upgradeURL string, logger logger.Interface) *UsageLimitMiddleware {
	return &UsageLimitMiddleware{
		usageService: usageService,
		upgradeURL:   upgradeURL,
		logger:       logger,
	}
}

// Enforce returns a middleware gating one metered resource. It must run
// after RequireAuth. The counter is incremented only when the handler
// produced a 2xx response, so rejected or failed requests never consume
// quota.
func (m *UsageLimitMiddleware) Enforce(resource usage.ResourceType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
			c.Abort()
			return
		}

		check, err := m.usageService.CheckUsageLimit(c.Request.Context(), userID, resource)
		if err != nil {
			m.logger.Errorw("usage limit check failed",
				"error", err, "user_id", userID, "resource", resource)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if !check.Allowed {
			utils.ErrorResponseWithDetails(c, http.StatusForbidden,
				UsageLimitErrorCode, check.Reason, quotaDenialDetails{
					ResourceType: resource.String(),
					Tier:         check.Tier,
					UpgradeURL:   m.upgradeURL,
				})
			c.Abort()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		if _, err := m.usageService.IncrementUsage(c.Request.Context(), userID, resource); err != nil {
			// The client already got its 2xx; losing one increment beats
			// failing the whole request after the work was done.
			m.logger.Errorw("failed to record usage after successful request",
				"error", err, "user_id", userID, "resource", resource)
		}
	}
}
