package models

import "time"

// ChatMessageModel is the persistence model for AI conversation messages.
type ChatMessageModel struct {
	ID        uint   `gorm:"primarykey"`
	UserID    uint   `gorm:"not null;index:idx_chat_user"`
	DatasetID uint   `gorm:"index:idx_chat_dataset"`
	Role      string `gorm:"not null;size:20"`
	Content   string `gorm:"not null;type:text"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
