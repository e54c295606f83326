// Package usage wires the metering use cases into the single service the
// HTTP layer and schedulers depend on.
package usage

import (
	"context"

	"iops/internal/application/usage/dto"
	"iops/internal/application/usage/usecases"
	usagedomain "iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/logger"
)

// Service is the usage ledger facade: the single source of truth for "how
// much of resource X has user U consumed this month, and are they allowed
// one more unit".
type Service struct {
	getOrCreate  *usecases.GetOrCreateUsageUseCase
	checkLimit   *usecases.CheckUsageLimitUseCase
	increment    *usecases.IncrementUsageUseCase
	getStats     *usecases.GetUsageStatsUseCase
	resetMonthly *usecases.ResetMonthlyUsageUseCase
}

func NewService(
	userRepo user.Repository,
	usageRepo usagedomain.UsageRecordRepository,
	policies *usagedomain.PolicyTable,
	log logger.Interface,
) *Service {
	getOrCreate := usecases.NewGetOrCreateUsageUseCase(usageRepo, log)

	return &Service{
		getOrCreate:  getOrCreate,
		checkLimit:   usecases.NewCheckUsageLimitUseCase(userRepo, getOrCreate, policies, log),
		increment:    usecases.NewIncrementUsageUseCase(userRepo, usageRepo, getOrCreate, policies, log),
		getStats:     usecases.NewGetUsageStatsUseCase(userRepo, getOrCreate, policies, log),
		resetMonthly: usecases.NewResetMonthlyUsageUseCase(userRepo, usageRepo, log),
	}
}

// SetStatsCache plugs in the optional redis snapshot cache.
func (s *Service) SetStatsCache(cache usecases.StatsCache) {
	s.getStats.SetStatsCache(cache)
	s.increment.SetStatsCache(cache)
	s.resetMonthly.SetStatsCache(cache)
}

// SetQuotaNotifier plugs in the optional quota-reached email notifier.
func (s *Service) SetQuotaNotifier(notifier usecases.QuotaNotifier) {
	s.increment.SetQuotaNotifier(notifier)
}

func (s *Service) GetOrCreateUsage(ctx context.Context, userID uint, monthYear string) (*usagedomain.UsageRecord, error) {
	return s.getOrCreate.Execute(ctx, usecases.GetOrCreateUsageQuery{UserID: userID, MonthYear: monthYear})
}

func (s *Service) CheckUsageLimit(ctx context.Context, userID uint, resource usagedomain.ResourceType) (*dto.LimitCheck, error) {
	return s.checkLimit.Execute(ctx, usecases.CheckUsageLimitQuery{UserID: userID, Resource: resource})
}

func (s *Service) IncrementUsage(ctx context.Context, userID uint, resource usagedomain.ResourceType) (bool, error) {
	return s.increment.Execute(ctx, usecases.IncrementUsageCommand{UserID: userID, Resource: resource})
}

func (s *Service) GetUsageStats(ctx context.Context, userID uint) (*dto.UsageStats, error) {
	return s.getStats.Execute(ctx, usecases.GetUsageStatsQuery{UserID: userID})
}

func (s *Service) ResetMonthlyUsage(ctx context.Context) (int64, error) {
	return s.resetMonthly.Execute(ctx)
}
