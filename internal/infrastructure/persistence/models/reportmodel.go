package models

import "time"

// ReportModel is the persistence model for shareable analysis reports. The
// short code is the public lookup key, so it carries its own unique index.
type ReportModel struct {
	ID              uint   `gorm:"primarykey"`
	UserID          uint   `gorm:"not null;index:idx_report_user"`
	DatasetID       uint   `gorm:"index:idx_report_dataset"`
	Title           string `gorm:"not null;size:255"`
	ShortCode       string `gorm:"uniqueIndex;not null;size:16"`
	SummaryMarkdown string `gorm:"type:text"`
	SummaryHTML     string `gorm:"type:text;column:summary_html"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (ReportModel) TableName() string {
	return "reports"
}
