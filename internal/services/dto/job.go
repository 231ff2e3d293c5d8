package dto

import (
	"time"

	"skillport_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=200"`
	Description string  `json:"description" validate:"omitempty,max=5000"`
	City        string  `json:"city" validate:"omitempty,max=100"`
	PaymentMin  float64 `json:"payment_min" validate:"min=0"`
	PaymentMax  float64 `json:"payment_max" validate:"omitempty,gtefield=PaymentMin"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=5000"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	PaymentMin  *float64 `json:"payment_min" validate:"omitempty,min=0"`
	PaymentMax  *float64 `json:"payment_max" validate:"omitempty,min=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft active closed"`
}

type JobListQuery struct {
	PaginationQuery
	City   string `form:"city" validate:"omitempty,max=100"`
	Search string `form:"search" validate:"omitempty,max=100"`
}

type JobResponse struct {
	ID               string    `json:"id"`
	DirectorID       string    `json:"director_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	City             string    `json:"city"`
	PaymentMin       float64   `json:"payment_min"`
	PaymentMax       float64   `json:"payment_max"`
	Status           string    `json:"status"`
	VisibilityWeight int       `json:"visibility_weight"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToJobResponse(j *models.Job) JobResponse {
	return JobResponse{
		ID:               j.ID,
		DirectorID:       j.DirectorID,
		Title:            j.Title,
		Description:      j.Description,
		City:             j.City,
		PaymentMin:       j.PaymentMin,
		PaymentMax:       j.PaymentMax,
		Status:           string(j.Status),
		VisibilityWeight: j.VisibilityWeight,
		CreatedAt:        j.CreatedAt,
	}
}

type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
	Meta ListMeta      `json:"meta"`
}
