package models

import "time"

// Message is a direct message between the director and talent of one
// application thread.
type Message struct {
	BaseModel
	ApplicationID string     `gorm:"type:uuid;not null;index" json:"application_id"`
	JobID         string     `gorm:"type:uuid;not null;index" json:"job_id"`
	DirectorID    string     `gorm:"type:uuid;not null;index" json:"director_id"`
	TalentID      string     `gorm:"type:uuid;not null;index" json:"talent_id"`
	SenderID      string     `gorm:"type:uuid;not null" json:"sender_id"`
	Body          string     `gorm:"not null" json:"body"`
	IsRead        bool       `gorm:"default:false" json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
}
