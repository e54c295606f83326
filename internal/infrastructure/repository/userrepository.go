package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iops/internal/domain/user"
	"iops/internal/infrastructure/persistence/mappers"
	"iops/internal/infrastructure/persistence/models"
	"iops/internal/shared/logger"
)

// listIDsBatchSize bounds memory when walking the whole user table.
const listIDsBatchSize = 1000

// UserRepository implements the user repository on GORM.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "id", id, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}

	return entity, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	entity, err := r.mapper.ToEntity(&model)
	if err != nil {
		r.logger.Errorw("failed to map user model to entity", "email", email, "error", err)
		return nil, fmt.Errorf("failed to map user: %w", err)
	}

	return entity, nil
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map user entity to model", "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user", "email", model.Email, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "email", model.Email)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, entity *user.User) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map user entity to model", "id", entity.ID(), "error", err)
		return fmt.Errorf("failed to map user entity: %w", err)
	}

	result := r.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"email":      model.Email,
			"username":   model.Username,
			"tier":       model.Tier,
			"role":       model.Role,
			"is_active":  model.IsActive,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}

// ListAllIDs walks the user table in batches and collects every primary key.
func (r *UserRepository) ListAllIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	var batch []models.UserModel

	result := r.db.WithContext(ctx).
		Select("id").
		FindInBatches(&batch, listIDsBatchSize, func(tx *gorm.DB, batchNo int) error {
			for _, model := range batch {
				ids = append(ids, model.ID)
			}
			return nil
		})
	if result.Error != nil {
		r.logger.Errorw("failed to list user IDs", "error", result.Error)
		return nil, fmt.Errorf("failed to list user IDs: %w", result.Error)
	}

	return ids, nil
}
