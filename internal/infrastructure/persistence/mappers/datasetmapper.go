package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"iops/internal/domain/dataset"
	"iops/internal/infrastructure/persistence/models"
)

// DatasetMapper handles the conversion between the dataset domain entity and
// its persistence model. Column metadata round-trips through a JSON column.
type DatasetMapper interface {
	ToEntity(model *models.DatasetModel) (*dataset.Dataset, error)
	ToModel(entity *dataset.Dataset) (*models.DatasetModel, error)
	ToEntities(models []*models.DatasetModel) ([]*dataset.Dataset, error)
}

type DatasetMapperImpl struct{}

func NewDatasetMapper() DatasetMapper {
	return &DatasetMapperImpl{}
}

func (m *DatasetMapperImpl) ToEntity(model *models.DatasetModel) (*dataset.Dataset, error) {
	if model == nil {
		return nil, nil
	}

	var columns []dataset.ColumnInfo
	if len(model.Columns) > 0 {
		if err := json.Unmarshal(model.Columns, &columns); err != nil {
			return nil, fmt.Errorf("failed to unmarshal dataset columns: %w", err)
		}
	}

	entity, err := dataset.Reconstruct(
		model.ID,
		model.UserID,
		model.Name,
		model.Filename,
		model.RowCount,
		model.ColumnCount,
		columns,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct dataset entity: %w", err)
	}

	return entity, nil
}

func (m *DatasetMapperImpl) ToModel(entity *dataset.Dataset) (*models.DatasetModel, error) {
	if entity == nil {
		return nil, nil
	}

	var columns datatypes.JSON
	if len(entity.Columns()) > 0 {
		raw, err := json.Marshal(entity.Columns())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal dataset columns: %w", err)
		}
		columns = raw
	}

	return &models.DatasetModel{
		ID:          entity.ID(),
		UserID:      entity.UserID(),
		Name:        entity.Name(),
		Filename:    entity.Filename(),
		RowCount:    entity.RowCount(),
		ColumnCount: entity.ColumnCount(),
		Columns:     columns,
		CreatedAt:   entity.CreatedAt(),
	}, nil
}

func (m *DatasetMapperImpl) ToEntities(datasetModels []*models.DatasetModel) ([]*dataset.Dataset, error) {
	entities := make([]*dataset.Dataset, 0, len(datasetModels))
	for _, model := range datasetModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
