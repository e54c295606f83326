// Package http wires handlers, middleware and routes into the gin engine.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	usageapp "iops/internal/application/usage"
	"iops/internal/infrastructure/auth"
	"iops/internal/infrastructure/cache"
	"iops/internal/infrastructure/config"
	"iops/internal/infrastructure/email"
	"iops/internal/infrastructure/ratelimit"
	"iops/internal/infrastructure/repository"
	"iops/internal/interfaces/http/handlers"
	"iops/internal/interfaces/http/middleware"
	"iops/internal/interfaces/http/routes"
	"iops/internal/shared/logger"
	"iops/internal/shared/services/markdown"
)

// Router owns the gin engine and the wired handler set.
type Router struct {
	engine *gin.Engine
}

// NewRouter builds the full HTTP surface: repositories, the usage service
// with its optional collaborators, handlers, middleware and routes.
func NewRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Router, error) {
	policies, err := config.LoadTierPolicies(cfg.Usage.TierPolicyPath)
	if err != nil {
		return nil, err
	}

	if err := registerValidations(); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db, log)
	usageRepo := repository.NewUsageRecordRepository(db, log)
	datasetRepo := repository.NewDatasetRepository(db, log)
	chatRepo := repository.NewChatMessageRepository(db, log)
	reportRepo := repository.NewReportRepository(db, log)

	usageService := usageapp.NewService(userRepo, usageRepo, policies, log)
	if redisClient != nil {
		ttl := time.Duration(cfg.Usage.StatsCacheTTL) * time.Second
		usageService.SetStatsCache(cache.NewRedisUsageStatsCache(redisClient, ttl, log))
	}
	if cfg.Email.SMTPHost != "" {
		usageService.SetQuotaNotifier(email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
			UpgradeURL:  cfg.Usage.UpgradeURL,
		}))
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	markdownService := markdown.NewService()

	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)
	usageLimitMiddleware := middleware.NewUsageLimitMiddleware(usageService, cfg.Usage.UpgradeURL, log)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		limiter := ratelimit.NewRedisLimiter(redisClient, ratelimit.Config{
			PerMinute: cfg.RateLimit.RequestsPerMinute,
			PerHour:   cfg.RateLimit.RequestsPerHour,
		}, log)
		rateLimiter = middleware.NewRateLimiter(limiter, log)
	}

	gin.SetMode(ginMode(cfg.Server.Mode))
	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	routes.Setup(engine, &routes.Config{
		AuthHandler:          handlers.NewAuthHandler(userRepo, hasher, jwtService, log),
		UserHandler:          handlers.NewUserHandler(userRepo, log),
		UsageHandler:         handlers.NewUsageHandler(usageService, log),
		DatasetHandler:       handlers.NewDatasetHandler(datasetRepo, log),
		ChatHandler:          handlers.NewChatHandler(chatRepo, log),
		ReportHandler:        handlers.NewReportHandler(reportRepo, markdownService, log),
		AuthMiddleware:       authMiddleware,
		UsageLimitMiddleware: usageLimitMiddleware,
		RateLimiter:          rateLimiter,
	})

	return &Router{engine: engine}, nil
}

// Engine exposes the underlying gin engine for the HTTP server.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func ginMode(mode string) string {
	switch mode {
	case "release", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
