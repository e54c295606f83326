package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/usage"
	"iops/internal/interfaces/http/handlers"
	"iops/internal/interfaces/http/middleware"
)

// Config holds the handler and middleware dependencies for route setup.
type Config struct {
	AuthHandler          *handlers.AuthHandler
	UserHandler          *handlers.UserHandler
	UsageHandler         *handlers.UsageHandler
	DatasetHandler       *handlers.DatasetHandler
	ChatHandler          *handlers.ChatHandler
	ReportHandler        *handlers.ReportHandler
	AuthMiddleware       *middleware.AuthMiddleware
	UsageLimitMiddleware *middleware.UsageLimitMiddleware
	RateLimiter          *middleware.RateLimiter // may be nil when Redis is not configured
}

// Setup registers every route. Creation endpoints for metered resources sit
// behind the usage-limit middleware for their resource type; reads never
// touch the quota.
func Setup(engine *gin.Engine, cfg *Config) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/register", rateLimited(cfg), cfg.AuthHandler.Register)
		authGroup.POST("/login", rateLimited(cfg), cfg.AuthHandler.Login)
	}

	api := engine.Group("/api", cfg.AuthMiddleware.RequireAuth())
	{
		api.POST("/datasets",
			cfg.UsageLimitMiddleware.Enforce(usage.ResourceDataset),
			cfg.DatasetHandler.Create)
		api.GET("/datasets", cfg.DatasetHandler.List)

		api.POST("/ai/messages",
			cfg.UsageLimitMiddleware.Enforce(usage.ResourceAIMessage),
			cfg.ChatHandler.Create)
		api.GET("/ai/messages", cfg.ChatHandler.List)

		api.POST("/reports",
			cfg.UsageLimitMiddleware.Enforce(usage.ResourceReport),
			cfg.ReportHandler.Create)
		api.GET("/reports", cfg.ReportHandler.List)

		api.GET("/usage/stats", cfg.UsageHandler.GetStats)

		admin := api.Group("/admin", cfg.AuthMiddleware.RequireAdmin())
		{
			admin.POST("/usage/reset", cfg.UsageHandler.ResetMonthlyUsage)
			admin.PUT("/users/:id/tier", cfg.UserHandler.UpdateTier)
		}
	}

	// Public report pages are shared by short code, no auth required.
	engine.GET("/api/public/reports/:code", cfg.ReportHandler.GetPublic)
}

func rateLimited(cfg *Config) gin.HandlerFunc {
	if cfg.RateLimiter != nil {
		return cfg.RateLimiter.Limit()
	}
	return func(c *gin.Context) { c.Next() }
}
