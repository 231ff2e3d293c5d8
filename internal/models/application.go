package models

type Application struct {
	BaseModel
	JobID    string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_talent" json:"job_id"`
	TalentID string            `gorm:"type:uuid;not null;uniqueIndex:idx_job_talent" json:"talent_id"`
	Answer   string            `json:"answer"`
	MediaURL *string           `json:"media_url,omitempty"`
	Status   ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
}
