package usecases

import (
	"context"
	"fmt"

	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/biztime"
	"iops/internal/shared/goroutine"
	"iops/internal/shared/logger"
)

type IncrementUsageCommand struct {
	UserID   uint
	Resource usage.ResourceType
}

// IncrementUsageUseCase adds exactly one unit to a metered counter. The
// underlying repository performs a single relative UPDATE so concurrent
// increments never lose writes, even though the preceding limit check ran in
// a separate round trip.
type IncrementUsageUseCase struct {
	userRepo    user.Repository
	usageRepo   usage.UsageRecordRepository
	getOrCreate *GetOrCreateUsageUseCase
	policies    *usage.PolicyTable
	statsCache  StatsCache
	notifier    QuotaNotifier
	logger      logger.Interface
}

func NewIncrementUsageUseCase(
	userRepo user.Repository,
	usageRepo usage.UsageRecordRepository,
	getOrCreate *GetOrCreateUsageUseCase,
	policies *usage.PolicyTable,
	logger logger.Interface,
) *IncrementUsageUseCase {
	return &IncrementUsageUseCase{
		userRepo:    userRepo,
		usageRepo:   usageRepo,
		getOrCreate: getOrCreate,
		policies:    policies,
		logger:      logger,
	}
}

// SetStatsCache sets the optional usage stats cache to invalidate on writes.
func (uc *IncrementUsageUseCase) SetStatsCache(cache StatsCache) {
	uc.statsCache = cache
}

// SetQuotaNotifier sets the optional notifier fired when the increment
// consumes the last unit of a capped resource.
func (uc *IncrementUsageUseCase) SetQuotaNotifier(notifier QuotaNotifier) {
	uc.notifier = notifier
}

// Execute returns (false, nil) for an unrecognized resource type without
// touching the store: that is a caller programming error, not a quota denial.
func (uc *IncrementUsageUseCase) Execute(ctx context.Context, cmd IncrementUsageCommand) (bool, error) {
	if !cmd.Resource.IsValid() {
		uc.logger.Warnw("increment requested for unknown resource type",
			"user_id", cmd.UserID, "resource", cmd.Resource)
		return false, nil
	}

	monthYear := biztime.CurrentMonthKey()

	// Make sure the row exists so the relative update has something to hit.
	if _, err := uc.getOrCreate.Execute(ctx, GetOrCreateUsageQuery{UserID: cmd.UserID, MonthYear: monthYear}); err != nil {
		return false, err
	}

	if err := uc.usageRepo.IncrementCounter(ctx, cmd.UserID, monthYear, cmd.Resource); err != nil {
		uc.logger.Errorw("failed to increment usage counter",
			"error", err, "user_id", cmd.UserID, "resource", cmd.Resource, "month_year", monthYear)
		return false, fmt.Errorf("failed to increment usage counter: %w", err)
	}

	uc.logger.Debugw("usage counter incremented",
		"user_id", cmd.UserID, "resource", cmd.Resource, "month_year", monthYear)

	if uc.statsCache != nil {
		if err := uc.statsCache.Invalidate(ctx, cmd.UserID, monthYear); err != nil {
			uc.logger.Warnw("failed to invalidate usage stats cache",
				"error", err, "user_id", cmd.UserID)
		}
	}

	uc.maybeNotifyQuotaReached(ctx, cmd, monthYear)

	return true, nil
}

// maybeNotifyQuotaReached sends the upgrade nudge when this increment landed
// exactly on the tier quota. Best-effort and asynchronous.
func (uc *IncrementUsageUseCase) maybeNotifyQuotaReached(ctx context.Context, cmd IncrementUsageCommand, monthYear string) {
	if uc.notifier == nil {
		return
	}

	account, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil || account == nil {
		return
	}

	limit := uc.policies.ForTier(account.Tier().String()).QuotaFor(cmd.Resource)
	if limit == usage.Unlimited {
		return
	}

	record, err := uc.usageRepo.GetByUserAndMonth(ctx, cmd.UserID, monthYear)
	if err != nil || record == nil {
		return
	}

	if record.CounterFor(cmd.Resource) != limit {
		return
	}

	notifier := uc.notifier
	log := uc.logger
	resource := cmd.Resource
	goroutine.SafeGo(uc.logger, "quota-reached-notify", func() {
		if err := notifier.NotifyQuotaReached(context.Background(), account, resource, limit); err != nil {
			log.Warnw("failed to send quota reached notification",
				"error", err, "user_id", account.ID(), "resource", resource)
		}
	})
}
