package dto

import (
	"time"

	"skillport_backend/internal/models"
)

type CreateApplicationRequest struct {
	JobID    string  `json:"job_id" validate:"required,uuid"`
	Answer   string  `json:"answer" validate:"omitempty,max=5000"`
	MediaURL *string `json:"media_url" validate:"omitempty,url"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted accepted rejected"`
}

type ApplicationResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	TalentID  string    `json:"talent_id"`
	Answer    string    `json:"answer"`
	MediaURL  *string   `json:"media_url,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func ToApplicationResponse(a *models.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		TalentID:  a.TalentID,
		Answer:    a.Answer,
		MediaURL:  a.MediaURL,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
}
