package usecases

import (
	"context"
	"errors"
	"fmt"

	"iops/internal/domain/usage"
	"iops/internal/shared/biztime"
	"iops/internal/shared/logger"
)

// GetOrCreateUsageQuery identifies the counter row to fetch. MonthYear
// defaults to the current UTC month when empty.
type GetOrCreateUsageQuery struct {
	UserID    uint
	MonthYear string
}

// GetOrCreateUsageUseCase lazily materializes the per-user-per-month counter
// row. Creation is race-safe: when two requests both observe the record as
// absent, the storage unique constraint lets exactly one insert win and the
// loser resolves to the existing row.
type GetOrCreateUsageUseCase struct {
	usageRepo usage.UsageRecordRepository
	logger    logger.Interface
}

func NewGetOrCreateUsageUseCase(
	usageRepo usage.UsageRecordRepository,
	logger logger.Interface,
) *GetOrCreateUsageUseCase {
	return &GetOrCreateUsageUseCase{
		usageRepo: usageRepo,
		logger:    logger,
	}
}

func (uc *GetOrCreateUsageUseCase) Execute(ctx context.Context, query GetOrCreateUsageQuery) (*usage.UsageRecord, error) {
	monthYear := query.MonthYear
	if monthYear == "" {
		monthYear = biztime.CurrentMonthKey()
	}

	record, err := uc.usageRepo.GetByUserAndMonth(ctx, query.UserID, monthYear)
	if err != nil {
		uc.logger.Errorw("failed to get usage record", "error", err, "user_id", query.UserID, "month_year", monthYear)
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}
	if record != nil {
		return record, nil
	}

	record, err = usage.NewUsageRecord(query.UserID, monthYear)
	if err != nil {
		return nil, err
	}

	if err := uc.usageRepo.Create(ctx, record); err != nil {
		if errors.Is(err, usage.ErrDuplicateRecord) {
			// Lost the creation race; the winning row is the record.
			existing, getErr := uc.usageRepo.GetByUserAndMonth(ctx, query.UserID, monthYear)
			if getErr != nil {
				uc.logger.Errorw("failed to re-read usage record after duplicate",
					"error", getErr, "user_id", query.UserID, "month_year", monthYear)
				return nil, fmt.Errorf("failed to re-read usage record: %w", getErr)
			}
			if existing == nil {
				return nil, fmt.Errorf("usage record vanished after duplicate insert for user %d month %s", query.UserID, monthYear)
			}
			return existing, nil
		}
		uc.logger.Errorw("failed to create usage record", "error", err, "user_id", query.UserID, "month_year", monthYear)
		return nil, fmt.Errorf("failed to create usage record: %w", err)
	}

	uc.logger.Debugw("usage record created", "user_id", query.UserID, "month_year", monthYear)
	return record, nil
}
