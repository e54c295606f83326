package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iops/internal/domain/dataset"
	"iops/internal/infrastructure/persistence/mappers"
	"iops/internal/infrastructure/persistence/models"
	"iops/internal/shared/logger"
)

// DatasetRepository implements the dataset repository on GORM.
type DatasetRepository struct {
	db     *gorm.DB
	mapper mappers.DatasetMapper
	logger logger.Interface
}

func NewDatasetRepository(db *gorm.DB, logger logger.Interface) dataset.Repository {
	return &DatasetRepository{
		db:     db,
		mapper: mappers.NewDatasetMapper(),
		logger: logger,
	}
}

func (r *DatasetRepository) Create(ctx context.Context, entity *dataset.Dataset) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map dataset entity to model", "error", err)
		return fmt.Errorf("failed to map dataset entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create dataset", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set dataset ID: %w", err)
	}

	return nil
}

func (r *DatasetRepository) GetByID(ctx context.Context, id uint) (*dataset.Dataset, error) {
	var model models.DatasetModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get dataset by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get dataset: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map dataset model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map dataset: %w", err)
	}

	return entity, nil
}

func (r *DatasetRepository) ListByUser(ctx context.Context, userID uint) ([]*dataset.Dataset, error) {
	var datasetModels []*models.DatasetModel

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&datasetModels).Error
	if err != nil {
		r.logger.Errorw("failed to list datasets", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	entities, err := r.mapper.ToEntities(datasetModels)
	if err != nil {
		r.logger.Errorw("failed to map dataset models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map datasets: %w", err)
	}

	return entities, nil
}
