package migration

import (
	"iops/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.UserModel{},
		&models.UsageRecordModel{},
		&models.DatasetModel{},
		&models.ChatMessageModel{},
		&models.ReportModel{},
	}
}
