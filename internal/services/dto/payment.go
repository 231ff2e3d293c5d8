package dto

import (
	"encoding/json"
	"time"

	"skillport_backend/internal/models"
)

type CheckoutRequest struct {
	CourseIDs []string `json:"course_ids" validate:"required,min=1,max=20,dive,uuid"`
}

type CheckoutResponse struct {
	Reference   string `json:"reference"`
	CheckoutURL string `json:"checkout_url"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
}

type PaymentResponse struct {
	ID        string     `json:"id"`
	Reference string     `json:"reference"`
	Amount    int64      `json:"amount"`
	Currency  string     `json:"currency"`
	Status    string     `json:"status"`
	CourseIDs []string   `json:"course_ids"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToPaymentResponse(p *models.Payment) PaymentResponse {
	var courseIDs []string
	_ = json.Unmarshal(p.CourseIDs, &courseIDs)
	return PaymentResponse{
		ID:        p.ID,
		Reference: p.Reference,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		CourseIDs: courseIDs,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

type EnrollmentResponse struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

func ToEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:        e.ID,
		CourseID:  e.CourseID,
		CreatedAt: e.CreatedAt,
	}
}
