package models

import "time"

// UsageRecordModel is the persistence model for monthly usage counters.
// The composite unique index on (user_id, month_year) is the authority for
// the one-record-per-user-per-month invariant; concurrent lazy creation
// relies on it rather than on application-level locking.
type UsageRecordModel struct {
	ID              uint   `gorm:"primarykey"`
	UserID          uint   `gorm:"not null;uniqueIndex:idx_user_month"`
	MonthYear       string `gorm:"not null;size:7;uniqueIndex:idx_user_month"`
	DatasetsCount   int    `gorm:"not null;default:0"`
	AIMessagesCount int    `gorm:"not null;default:0;column:ai_messages_count"`
	ReportsCount    int    `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (UsageRecordModel) TableName() string {
	return "usage_records"
}
