package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iops/internal/infrastructure/ratelimit"
	"iops/internal/shared/logger"
	"iops/internal/shared/utils"
)

// RateLimiter throttles unauthenticated endpoints per client IP. When the
// backing store is unavailable it fails open; blocking all traffic on a
// Redis outage would be worse than briefly losing abuse protection.
type RateLimiter struct {
	limiter ratelimit.Limiter
	logger  logger.Interface
}

func NewRateLimiter(limiter ratelimit.Limiter, logger logger.Interface) *RateLimiter {
	return &RateLimiter{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit returns a middleware enforcing the limiter's per-IP caps.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		allowed, err := rl.limiter.Allow(c.Request.Context(), "ip:"+clientIP)
		if err != nil {
			rl.logger.Warnw("rate limit check failed, allowing request", "error", err, "ip", clientIP)
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
