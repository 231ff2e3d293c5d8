package models

type Job struct {
	BaseModel
	DirectorID  string    `gorm:"type:uuid;not null;index" json:"director_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	City        string    `gorm:"index" json:"city"`
	PaymentMin  float64   `json:"payment_min"`
	PaymentMax  float64   `json:"payment_max"`
	Status      JobStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	Hidden      bool      `gorm:"default:false" json:"hidden"`

	// Stamped from the director's trust capabilities when the job is
	// created or reactivated; public listings sort on it.
	VisibilityWeight int `gorm:"default:0" json:"visibility_weight"`
}
