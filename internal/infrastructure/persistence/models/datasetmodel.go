package models

import (
	"time"

	"gorm.io/datatypes"
)

// DatasetModel is the persistence model for uploaded datasets. Column
// metadata is stored as a JSON document; the ledger only needs the row to
// exist, not a relational breakdown of the schema.
type DatasetModel struct {
	ID          uint   `gorm:"primarykey"`
	UserID      uint   `gorm:"not null;index:idx_dataset_user"`
	Name        string `gorm:"not null;size:255"`
	Filename    string `gorm:"not null;size:255"`
	RowCount    int    `gorm:"not null;default:0"`
	ColumnCount int    `gorm:"not null;default:0"`
	Columns     datatypes.JSON
	CreatedAt   time.Time
}

// TableName specifies the table name for GORM
func (DatasetModel) TableName() string {
	return "datasets"
}
