package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"iops/internal/domain/usage"
	"iops/internal/infrastructure/persistence/mappers"
	"iops/internal/infrastructure/persistence/models"
	apperrors "iops/internal/shared/errors"
	"iops/internal/shared/logger"
)

// UsageRecordRepository implements the usage record repository on GORM.
// Counter updates are single relative UPDATE statements so concurrent
// increments for the same row serialize in the database instead of losing
// writes through read-modify-write races.
type UsageRecordRepository struct {
	db     *gorm.DB
	mapper mappers.UsageRecordMapper
	logger logger.Interface
}

func NewUsageRecordRepository(db *gorm.DB, logger logger.Interface) usage.UsageRecordRepository {
	return &UsageRecordRepository{
		db:     db,
		mapper: mappers.NewUsageRecordMapper(),
		logger: logger,
	}
}

func (r *UsageRecordRepository) GetByUserAndMonth(ctx context.Context, userID uint, monthYear string) (*usage.UsageRecord, error) {
	var model models.UsageRecordModel

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND month_year = ?", userID, monthYear).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get usage record", "user_id", userID, "month_year", monthYear, "error", err)
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map usage record model to entity", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map usage record: %w", err)
	}

	return entity, nil
}

// Create inserts a zeroed record. A unique constraint collision maps to
// usage.ErrDuplicateRecord so callers can resolve the creation race by
// re-reading the winning row.
func (r *UsageRecordRepository) Create(ctx context.Context, record *usage.UsageRecord) error {
	model, err := r.mapper.ToModel(record)
	if err != nil {
		r.logger.Errorw("failed to map usage record entity to model", "error", err)
		return fmt.Errorf("failed to map usage record entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return usage.ErrDuplicateRecord
		}
		r.logger.Errorw("failed to create usage record",
			"user_id", model.UserID, "month_year", model.MonthYear, "error", err)
		return fmt.Errorf("failed to create usage record: %w", err)
	}

	if err := record.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set usage record ID: %w", err)
	}

	return nil
}

// IncrementCounter adds one unit to the resource's column with a relative
// UPDATE. The row must already exist; callers ensure that via Create.
func (r *UsageRecordRepository) IncrementCounter(ctx context.Context, userID uint, monthYear string, resource usage.ResourceType) error {
	column, err := counterColumn(resource)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.UsageRecordModel{}).
		Where("user_id = ? AND month_year = ?", userID, monthYear).
		Updates(map[string]interface{}{
			column:       gorm.Expr(column+" + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to increment usage counter",
			"user_id", userID, "month_year", monthYear, "column", column, "error", result.Error)
		return fmt.Errorf("failed to increment usage counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("usage record not found for user %d month %s", userID, monthYear)
	}

	return nil
}

// EnsureRecordsForUsers inserts zeroed rows for every given user, skipping
// users that already have one for the month.
func (r *UsageRecordRepository) EnsureRecordsForUsers(ctx context.Context, monthYear string, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]models.UsageRecordModel, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.UsageRecordModel{
			UserID:    id,
			MonthYear: monthYear,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
	if err != nil {
		r.logger.Errorw("failed to ensure usage records",
			"month_year", monthYear, "count", len(userIDs), "error", err)
		return fmt.Errorf("failed to ensure usage records: %w", err)
	}

	return nil
}

// ResetNonZero zeroes every counter for the month in one bulk UPDATE and
// returns how many rows actually changed. Rows already at zero are left
// untouched, which is what makes a repeated run report zero affected.
func (r *UsageRecordRepository) ResetNonZero(ctx context.Context, monthYear string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UsageRecordModel{}).
		Where("month_year = ?", monthYear).
		Where("datasets_count > 0 OR ai_messages_count > 0 OR reports_count > 0").
		Updates(map[string]interface{}{
			"datasets_count":    0,
			"ai_messages_count": 0,
			"reports_count":     0,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to reset usage counters", "month_year", monthYear, "error", result.Error)
		return 0, fmt.Errorf("failed to reset usage counters: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func counterColumn(resource usage.ResourceType) (string, error) {
	switch resource {
	case usage.ResourceDataset:
		return "datasets_count", nil
	case usage.ResourceAIMessage:
		return "ai_messages_count", nil
	case usage.ResourceReport:
		return "reports_count", nil
	default:
		return "", fmt.Errorf("%w: %q", usage.ErrUnknownResourceType, resource)
	}
}
