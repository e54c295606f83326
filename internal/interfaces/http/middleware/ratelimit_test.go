package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"iops/internal/shared/logger"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func rateLimitedEngine(limiter *stubLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	rl := NewRateLimiter(limiter, logger.NewLogger())
	engine.POST("/login", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestRateLimiter_AllowsUnderCap(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	engine := rateLimitedEngine(limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	if assert.Len(t, limiter.keys, 1) {
		assert.Contains(t, limiter.keys[0], "ip:")
	}
}

func TestRateLimiter_RejectsOverCap(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	engine := rateLimitedEngine(limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_FailsOpenOnStoreError(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	engine := rateLimitedEngine(limiter)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
