package usecases

import (
	"context"
	"fmt"

	"iops/internal/application/usage/dto"
	"iops/internal/domain/usage"
	"iops/internal/domain/user"
	"iops/internal/shared/errors"
	"iops/internal/shared/logger"
)

type CheckUsageLimitQuery struct {
	UserID   uint
	Resource usage.ResourceType
}

// CheckUsageLimitUseCase answers "may this user consume one more unit". It is
// a pure read of the counters (the lazy record creation is its only side
// effect) and is deliberately separate from the increment: the soft-quota
// design tolerates a narrow over-admission window between the two calls.
type CheckUsageLimitUseCase struct {
	userRepo    user.Repository
	getOrCreate *GetOrCreateUsageUseCase
	policies    *usage.PolicyTable
	logger      logger.Interface
}

func NewCheckUsageLimitUseCase(
	userRepo user.Repository,
	getOrCreate *GetOrCreateUsageUseCase,
	policies *usage.PolicyTable,
	logger logger.Interface,
) *CheckUsageLimitUseCase {
	return &CheckUsageLimitUseCase{
		userRepo:    userRepo,
		getOrCreate: getOrCreate,
		policies:    policies,
		logger:      logger,
	}
}

func (uc *CheckUsageLimitUseCase) Execute(ctx context.Context, query CheckUsageLimitQuery) (*dto.LimitCheck, error) {
	if !query.Resource.IsValid() {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown resource type: %s", query.Resource))
	}

	account, err := uc.userRepo.GetByID(ctx, query.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load user for limit check", "error", err, "user_id", query.UserID)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if account == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	tier := account.Tier().String()
	quotas := uc.policies.ForTier(tier)
	if !uc.policies.HasTier(tier) {
		uc.logger.Warnw("unknown tier, applying free policy", "user_id", query.UserID, "tier", tier)
	}
	limit := quotas.QuotaFor(query.Resource)

	record, err := uc.getOrCreate.Execute(ctx, GetOrCreateUsageQuery{UserID: query.UserID})
	if err != nil {
		return nil, err
	}
	current := record.CounterFor(query.Resource)

	result := &dto.LimitCheck{
		Tier:    tier,
		Current: current,
		Limit:   limit,
	}

	if limit == usage.Unlimited {
		result.Allowed = true
		return result, nil
	}

	// The quota is the maximum allowed count: current == limit already denies.
	if current >= limit {
		result.Reason = fmt.Sprintf(
			"You've reached your monthly %s limit (%d/%d). Please upgrade your plan.",
			query.Resource.DisplayName(), current, limit,
		)
		uc.logger.Infow("usage limit reached",
			"user_id", query.UserID,
			"resource", query.Resource,
			"tier", tier,
			"current", current,
			"limit", limit,
		)
		return result, nil
	}

	result.Allowed = true
	return result, nil
}
