package models

import "gorm.io/datatypes"

// AuditLog records one admin-initiated state change. Rows are append-only:
// no service or repository exposes an update or delete for them.
type AuditLog struct {
	BaseModel
	ActorID    string         `gorm:"type:uuid;not null;index" json:"actor_id"`
	Action     string         `gorm:"not null" json:"action"` // "user.freeze", "user.unfreeze", "lesson.approve", "lesson.reject", "user.trust_score"
	TargetType string         `gorm:"not null" json:"target_type"`
	TargetID   string         `gorm:"type:uuid;not null;index" json:"target_id"`
	Before     datatypes.JSON `gorm:"type:jsonb" json:"before"`
	After      datatypes.JSON `gorm:"type:jsonb" json:"after"`
	Reason     string         `gorm:"not null" json:"reason"`
}
