package mappers

import (
	"fmt"

	"iops/internal/domain/report"
	"iops/internal/infrastructure/persistence/models"
)

// ReportMapper handles the conversion between the report domain entity and
// its persistence model.
type ReportMapper interface {
	ToEntity(model *models.ReportModel) (*report.Report, error)
	ToModel(entity *report.Report) (*models.ReportModel, error)
	ToEntities(models []*models.ReportModel) ([]*report.Report, error)
}

type ReportMapperImpl struct{}

func NewReportMapper() ReportMapper {
	return &ReportMapperImpl{}
}

func (m *ReportMapperImpl) ToEntity(model *models.ReportModel) (*report.Report, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := report.Reconstruct(
		model.ID,
		model.UserID,
		model.DatasetID,
		model.Title,
		model.ShortCode,
		model.SummaryMarkdown,
		model.SummaryHTML,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct report entity: %w", err)
	}

	return entity, nil
}

func (m *ReportMapperImpl) ToModel(entity *report.Report) (*models.ReportModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.ReportModel{
		ID:              entity.ID(),
		UserID:          entity.UserID(),
		DatasetID:       entity.DatasetID(),
		Title:           entity.Title(),
		ShortCode:       entity.ShortCode(),
		SummaryMarkdown: entity.SummaryMarkdown(),
		SummaryHTML:     entity.SummaryHTML(),
		CreatedAt:       entity.CreatedAt(),
	}, nil
}

func (m *ReportMapperImpl) ToEntities(reportModels []*models.ReportModel) ([]*report.Report, error) {
	entities := make([]*report.Report, 0, len(reportModels))
	for _, model := range reportModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
