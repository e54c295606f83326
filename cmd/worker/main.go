package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	usageapp "iops/internal/application/usage"
	"iops/internal/infrastructure/cache"
	"iops/internal/infrastructure/config"
	"iops/internal/infrastructure/database"
	"iops/internal/infrastructure/repository"
	"iops/internal/infrastructure/scheduler"
	"iops/internal/shared/logger"
)

// The worker owns the monthly usage reset. It runs separately from the API
// server so that exactly one process fires the rollover.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting usage reset worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	policies, err := config.LoadTierPolicies(cfg.Usage.TierPolicyPath)
	if err != nil {
		log.Fatalw("failed to load tier policies", "error", err)
	}

	userRepo := repository.NewUserRepository(database.Get(), log)
	usageRepo := repository.NewUsageRecordRepository(database.Get(), log)
	usageService := usageapp.NewService(userRepo, usageRepo, policies, log)

	// The reset invalidates cached stats snapshots, so the worker attaches
	// the same cache the API serves from.
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			log.Fatalw("failed to connect to redis", "error", err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

		ttl := time.Duration(cfg.Usage.StatsCacheTTL) * time.Second
		usageService.SetStatsCache(cache.NewRedisUsageStatsCache(redisClient, ttl, log))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resetScheduler := scheduler.NewUsageResetScheduler(usageService, log)
	resetScheduler.Start(ctx)

	log.Infow("usage reset worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)

	cancel()
	resetScheduler.Stop()

	log.Infow("usage reset worker stopped")
}
