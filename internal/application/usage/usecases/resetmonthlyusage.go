package usecases

import (
	"context"
	"fmt"

	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/biztime"
	"iops/internal/shared/logger"
)

// ensureBatchSize bounds the per-statement row count when seeding
// current-month records for the whole user population.
const ensureBatchSize = 500

// ResetMonthlyUsageUseCase zeroes every user's current-month counters. It is
// meant to run once at each month boundary but is safe to run repeatedly: a
// second immediate run finds nothing non-zero and reports zero affected
// users. Both phases are bulk statements, not per-user round trips.
type ResetMonthlyUsageUseCase struct {
	userRepo   user.Repository
	usageRepo  usage.UsageRecordRepository
	statsCache StatsCache
	logger     logger.Interface
}

func NewResetMonthlyUsageUseCase(
	userRepo user.Repository,
	usageRepo usage.UsageRecordRepository,
	logger logger.Interface,
) *ResetMonthlyUsageUseCase {
	return &ResetMonthlyUsageUseCase{
		userRepo:  userRepo,
		usageRepo: usageRepo,
		logger:    logger,
	}
}

// SetStatsCache sets the optional snapshot cache to invalidate after the
// counters are zeroed.
func (uc *ResetMonthlyUsageUseCase) SetStatsCache(cache StatsCache) {
	uc.statsCache = cache
}

// Execute returns the number of users whose record had at least one non-zero
// counter before the reset. The count feeds operational logging only.
func (uc *ResetMonthlyUsageUseCase) Execute(ctx context.Context) (int64, error) {
	monthYear := biztime.CurrentMonthKey()

	userIDs, err := uc.userRepo.ListAllIDs(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list users for monthly reset", "error", err)
		return 0, fmt.Errorf("failed to list users: %w", err)
	}

	for start := 0; start < len(userIDs); start += ensureBatchSize {
		end := start + ensureBatchSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		if err := uc.usageRepo.EnsureRecordsForUsers(ctx, monthYear, userIDs[start:end]); err != nil {
			uc.logger.Errorw("failed to ensure usage records for reset",
				"error", err, "month_year", monthYear, "batch_start", start)
			return 0, fmt.Errorf("failed to ensure usage records: %w", err)
		}
	}

	affected, err := uc.usageRepo.ResetNonZero(ctx, monthYear)
	if err != nil {
		uc.logger.Errorw("failed to reset monthly usage", "error", err, "month_year", monthYear)
		return 0, fmt.Errorf("failed to reset monthly usage: %w", err)
	}

	uc.invalidateStats(ctx, monthYear, userIDs)

	uc.logger.Infow("monthly usage reset completed",
		"month_year", monthYear,
		"total_users", len(userIDs),
		"affected_users", affected,
	)

	return affected, nil
}

// invalidateStats drops every user's cached snapshot for the month so the
// dashboard never serves pre-reset counters. Best-effort: a cache failure
// does not undo the reset.
func (uc *ResetMonthlyUsageUseCase) invalidateStats(ctx context.Context, monthYear string, userIDs []uint) {
	if uc.statsCache == nil {
		return
	}

	for _, userID := range userIDs {
		if err := uc.statsCache.Invalidate(ctx, userID, monthYear); err != nil {
			uc.logger.Warnw("failed to invalidate usage stats cache after reset",
				"error", err, "user_id", userID, "month_year", monthYear)
			return
		}
	}
}
