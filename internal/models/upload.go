package models

type Upload struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	FileName string `gorm:"not null" json:"file_name"`
	Path     string `gorm:"not null" json:"-"`
	URL      string `gorm:"not null" json:"url"`
	// Mirror on the secondary media account; empty when mirroring failed
	// or is not configured.
	SecondaryURL *string `json:"secondary_url,omitempty"`
	MimeType     string  `gorm:"not null" json:"mime_type"`
	Size         int64   `gorm:"not null" json:"size"`
}
