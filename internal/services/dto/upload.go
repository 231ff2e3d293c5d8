package dto

import (
	"time"

	"skillport_backend/internal/models"
)

type UploadResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	URL          string    `json:"url"`
	SecondaryURL *string   `json:"secondary_url,omitempty"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToUploadResponse(u *models.Upload) UploadResponse {
	return UploadResponse{
		ID:           u.ID,
		FileName:     u.FileName,
		URL:          u.URL,
		SecondaryURL: u.SecondaryURL,
		MimeType:     u.MimeType,
		Size:         u.Size,
		CreatedAt:    u.CreatedAt,
	}
}
