package mappers

import (
	"fmt"

	"iops/internal/domain/usage"
	"iops/internal/infrastructure/persistence/models"
)

// UsageRecordMapper handles the conversion between the usage record domain
// entity and its persistence model.
type UsageRecordMapper interface {
	ToEntity(model *models.UsageRecordModel) (*usage.UsageRecord, error)
	ToModel(entity *usage.UsageRecord) (*models.UsageRecordModel, error)
	ToEntities(models []*models.UsageRecordModel) ([]*usage.UsageRecord, error)
}

type UsageRecordMapperImpl struct{}

func NewUsageRecordMapper() UsageRecordMapper {
	return &UsageRecordMapperImpl{}
}

func (m *UsageRecordMapperImpl) ToEntity(model *models.UsageRecordModel) (*usage.UsageRecord, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := usage.ReconstructUsageRecord(
		model.ID,
		model.UserID,
		model.MonthYear,
		model.DatasetsCount,
		model.AIMessagesCount,
		model.ReportsCount,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct usage record: %w", err)
	}

	return entity, nil
}

func (m *UsageRecordMapperImpl) ToModel(entity *usage.UsageRecord) (*models.UsageRecordModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.UsageRecordModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		MonthYear:       entity.MonthYear(),
		DatasetsCount:   entity.DatasetsCount(),
		AIMessagesCount: entity.AIMessagesCount(),
		ReportsCount:    entity.ReportsCount(),
		CreatedAt:       entity.CreatedAt(),
		UpdatedAt:       entity.UpdatedAt(),
	}, nil
}

func (m *UsageRecordMapperImpl) ToEntities(recordModels []*models.UsageRecordModel) ([]*usage.UsageRecord, error) {
	entities := make([]*usage.UsageRecord, 0, len(recordModels))
	for _, model := range recordModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
