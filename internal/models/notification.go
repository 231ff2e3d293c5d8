package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string         `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"not null" json:"type"` // "application_status", "new_message", "lesson_reviewed", "enrollment"
	Title   string         `gorm:"not null" json:"title"`
	Message string         `json:"message"`
	Data    datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead  bool           `gorm:"default:false" json:"is_read"`
	ReadAt  *time.Time     `json:"read_at,omitempty"`
}
