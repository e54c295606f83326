package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iops/internal/domain/report"
	"iops/internal/infrastructure/persistence/mappers"
	"iops/internal/infrastructure/persistence/models"
	"iops/internal/shared/logger"
)

// ReportRepository implements the report repository on GORM.
type ReportRepository struct {
	db     *gorm.DB
	mapper mappers.ReportMapper
	logger logger.Interface
}

func NewReportRepository(db *gorm.DB, logger logger.Interface) report.Repository {
	return &ReportRepository{
		db:     db,
		mapper: mappers.NewReportMapper(),
		logger: logger,
	}
}

func (r *ReportRepository) Create(ctx context.Context, entity *report.Report) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map report entity to model", "error", err)
		return fmt.Errorf("failed to map report entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create report", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create report: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set report ID: %w", err)
	}

	return nil
}

func (r *ReportRepository) GetByShortCode(ctx context.Context, code string) (*report.Report, error) {
	var model models.ReportModel

	if err := r.db.WithContext(ctx).Where("short_code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get report by short code", "short_code", code, "error", err)
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map report model to entity", "short_code", code, "error", err)
		return nil, fmt.Errorf("failed to map report: %w", err)
	}

	return entity, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID uint) ([]*report.Report, error) {
	var reportModels []*models.ReportModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reportModels).Error
	if err != nil {
		r.logger.Errorw("failed to list reports", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	entities, err := r.mapper.ToEntities(reportModels)
	if err != nil {
		r.logger.Errorw("failed to map report models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map reports: %w", err)
	}

	return entities, nil
}
