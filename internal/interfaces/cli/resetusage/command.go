package resetusage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	usageapp "iops/internal/application/usage"
	"iops/internal/infrastructure/config"
	"iops/internal/infrastructure/database"
	"iops/internal/infrastructure/repository"
	"iops/internal/shared/biztime"
	"iops/internal/shared/logger"
)

var (
	env     string
	timeout time.Duration
)

// NewCommand builds the manual monthly-reset command. The reset is
// idempotent, so re-running it after a partial failure is safe.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset-usage",
		Short: "Reset all usage counters for the current month",
		Long:  `Zero every user's usage counters for the current month. Normally the worker scheduler does this at month rollover; this command covers manual recovery.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Abort the reset after this duration")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	policies, err := config.LoadTierPolicies(cfg.Usage.TierPolicyPath)
	if err != nil {
		return fmt.Errorf("failed to load tier policies: %w", err)
	}

	userRepo := repository.NewUserRepository(database.Get(), log)
	usageRepo := repository.NewUsageRecordRepository(database.Get(), log)
	usageService := usageapp.NewService(userRepo, usageRepo, policies, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	monthYear := biztime.CurrentMonthKey()
	log.Infow("resetting monthly usage", "month_year", monthYear, "environment", env)

	affected, err := usageService.ResetMonthlyUsage(ctx)
	if err != nil {
		log.Errorw("monthly usage reset failed", "error", err)
		return fmt.Errorf("monthly usage reset failed: %w", err)
	}

	log.Infow("monthly usage reset completed", "month_year", monthYear, "affected_users", affected)
	fmt.Printf("Reset usage counters for %d user(s) in %s\n", affected, monthYear)

	return nil
}
