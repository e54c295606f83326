package models

import "time"

// UserModel is the persistence model for accounts. It is the
// anti-corruption layer between the user domain and the database.
type UserModel struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"uniqueIndex;not null;size:255"`
	Username     string `gorm:"not null;size:100"`
	PasswordHash string `gorm:"not null;size:255"`
	Tier         string `gorm:"not null;default:free;size:20"`
	Role         string `gorm:"not null;default:user;size:20"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
