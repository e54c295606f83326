package mappers

import (
	"fmt"

	"iops/internal/domain/chat"
	"iops/internal/infrastructure/persistence/models"
)

// ChatMessageMapper handles the conversion between the chat message domain
// entity and its persistence model.
type ChatMessageMapper interface {
	ToEntity(model *models.ChatMessageModel) (*chat.Message, error)
	ToModel(entity *chat.Message) (*models.ChatMessageModel, error)
	ToEntities(models []*models.ChatMessageModel) ([]*chat.Message, error)
}

type ChatMessageMapperImpl struct{}

func NewChatMessageMapper() ChatMessageMapper {
	return &ChatMessageMapperImpl{}
}

func (m *ChatMessageMapperImpl) ToEntity(model *models.ChatMessageModel) (*chat.Message, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := chat.Reconstruct(
		model.ID,
		model.UserID,
		model.DatasetID,
		chat.MessageRole(model.Role),
		model.Content,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct chat message entity: %w", err)
	}

	return entity, nil
}

func (m *ChatMessageMapperImpl) ToModel(entity *chat.Message) (*models.ChatMessageModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ChatMessageModel{
		ID:        entity.ID(),
		UserID:    entity.UserID(),
		DatasetID: entity.DatasetID(),
		Role:      string(entity.Role()),
		Content:   entity.Content(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *ChatMessageMapperImpl) ToEntities(messageModels []*models.ChatMessageModel) ([]*chat.Message, error) {
	entities := make([]*chat.Message, 0, len(messageModels))
	for _, model := range messageModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
