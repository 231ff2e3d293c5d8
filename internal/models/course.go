package models

import "time"

type Course struct {
	BaseModel
	AuthorID    string `gorm:"type:uuid;not null;index" json:"author_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	// Price in minor currency units.
	Price     int64  `gorm:"default:0" json:"price"`
	Currency  string `gorm:"type:varchar(3);default:'NGN'" json:"currency"`
	Published bool   `gorm:"default:false" json:"published"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

type CourseModule struct {
	BaseModel
	CourseID   string `gorm:"type:uuid;not null;index" json:"course_id"`
	Title      string `gorm:"not null" json:"title"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
}

// Lesson content goes through moderation: exactly one of pending
// (approved=false, no note), approved (approved=true, note nil) or
// rejected (approved=false, note set).
type Lesson struct {
	BaseModel
	ModuleID   string `gorm:"type:uuid;not null;index" json:"module_id"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `json:"content"`
	OrderIndex int    `gorm:"default:0" json:"order_index"`

	Approved      bool       `gorm:"default:false" json:"approved"`
	RejectionNote *string    `json:"rejection_note,omitempty"`
	ReviewedBy    *string    `gorm:"type:uuid" json:"-"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

type Enrollment struct {
	BaseModel
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"user_id"`
	CourseID  string `gorm:"type:uuid;not null;uniqueIndex:idx_user_course" json:"course_id"`
	PaymentID string `gorm:"type:uuid" json:"payment_id"`
}
