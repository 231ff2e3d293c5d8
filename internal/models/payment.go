package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment mirrors one gateway transaction. Reference is the gateway's
// idempotent transaction id; webhook reconciliation looks payments up by
// it, which is what makes replays safe.
type Payment struct {
	BaseModel
	Reference string        `gorm:"not null;uniqueIndex" json:"reference"`
	UserID    string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount    int64         `gorm:"not null" json:"amount"` // minor units
	Currency  string        `gorm:"type:varchar(3);not null" json:"currency"`
	Status    PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	// One payment may cover multiple courses.
	CourseIDs datatypes.JSON `gorm:"type:jsonb" json:"course_ids"`
	PaidAt    *time.Time     `json:"paid_at,omitempty"`
}
