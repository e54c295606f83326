package usecases

import (
	"context"
	"fmt"

	"iops/internal/application/usage/dto"
	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/biztime"
	"iops/internal/shared/errors"
	"iops/internal/shared/logger"
)

type GetUsageStatsQuery struct {
	UserID uint
}

// GetUsageStatsUseCase assembles the dashboard snapshot: tier, month key and
// the current/limit/unlimited triple for each metered resource. A user with
// no record yet this month reads as all-zero, which is distinct from an
// unknown user id (not-found error).
type GetUsageStatsUseCase struct {
	userRepo    user.Repository
	getOrCreate *GetOrCreateUsageUseCase
	policies    *usage.PolicyTable
	statsCache  StatsCache
	logger      logger.Interface
}

func NewGetUsageStatsUseCase(
	userRepo user.Repository,
	getOrCreate *GetOrCreateUsageUseCase,
	policies *usage.PolicyTable,
	logger logger.Interface,
) *GetUsageStatsUseCase {
	return &GetUsageStatsUseCase{
		userRepo:    userRepo,
		getOrCreate: getOrCreate,
		policies:    policies,
		logger:      logger,
	}
}

// SetStatsCache sets the optional read-through snapshot cache.
func (uc *GetUsageStatsUseCase) SetStatsCache(cache StatsCache) {
	uc.statsCache = cache
}

func (uc *GetUsageStatsUseCase) Execute(ctx context.Context, query GetUsageStatsQuery) (*dto.UsageStats, error) {
	monthYear := biztime.CurrentMonthKey()

	if uc.statsCache != nil {
		if cached, err := uc.statsCache.Get(ctx, query.UserID, monthYear); err != nil {
			uc.logger.Warnw("usage stats cache read failed", "error", err, "user_id", query.UserID)
		} else if cached != nil {
			return cached, nil
		}
	}

	account, err := uc.userRepo.GetByID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user for usage stats", "error", err, "user_id", query.UserID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	tier := account.Tier().String()
	quotas := uc.policies.ForTier(tier)

	record, err := uc.getOrCreate.Execute(ctx, GetOrCreateUsageQuery{UserID: query.UserID, MonthYear: monthYear})
	if err != nil {
		return nil, err
	}

	stats := &dto.UsageStats{
		Tier:       tier,
		MonthYear:  record.MonthYear(),
		Datasets:   resourceUsage(record.DatasetsCount(), quotas.DatasetsPerMonth),
		AIMessages: resourceUsage(record.AIMessagesCount(), quotas.AIMessagesPerMonth),
		Reports:    resourceUsage(record.ReportsCount(), quotas.ReportsPerMonth),
	}

	if uc.statsCache != nil {
		if err := uc.statsCache.Set(ctx, query.UserID, monthYear, stats); err != nil {
			uc.logger.Warnw("usage stats cache write failed", "error", err, "user_id", query.UserID)
		}
	}

	return stats, nil
}

func resourceUsage(current, limit int) dto.ResourceUsage {
	return dto.ResourceUsage{
		Current:   current,
		Limit:     limit,
		Unlimited: limit == usage.Unlimited,
	}
}
