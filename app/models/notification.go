package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification is one in-app inbox entry, written by the database channel
// of the notification system.
type Notification struct {
	gorm.Model
	UserID  uint       `gorm:"not null;index" json:"user_id"`
	Type    string     `gorm:"size:100;not null" json:"type"`
	Message string     `gorm:"type:text;not null" json:"message"`
	Data    string     `gorm:"type:text" json:"data"` // JSON payload
	ReadAt  *time.Time `json:"read_at"`
}
