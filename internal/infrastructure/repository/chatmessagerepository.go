package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"iops/internal/domain/chat"
	"iops/internal/infrastructure/persistence/mappers"
	"iops/internal/infrastructure/persistence/models"
	"iops/internal/shared/logger"
)

// ChatMessageRepository implements the chat message repository on GORM.
type ChatMessageRepository struct {
	db     *gorm.DB
	mapper mappers.ChatMessageMapper
	logger logger.Interface
}

func NewChatMessageRepository(db *gorm.DB, logger logger.Interface) chat.Repository {
	return &ChatMessageRepository{
		db:     db,
		mapper: mappers.NewChatMessageMapper(),
		logger: logger,
	}
}

func (r *ChatMessageRepository) Create(ctx context.Context, entity *chat.Message) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map chat message entity to model", "error", err)
		return fmt.Errorf("failed to map chat message entity: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create chat message", "user_id", model.UserID, "error", err)
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set chat message ID: %w", err)
	}

	return nil
}

func (r *ChatMessageRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*chat.Message, error) {
	var messageModels []*models.ChatMessageModel

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messageModels).Error; err != nil {
		r.logger.Errorw("failed to list chat messages", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	entities, err := r.mapper.ToEntities(messageModels)
	if err != nil {
		r.logger.Errorw("failed to map chat message models to entities", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to map chat messages: %w", err)
	}

	return entities, nil
}
