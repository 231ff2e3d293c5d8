package dto

import (
	"time"

	"skillport_backend/internal/models"
)

type SendMessageRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
	Body          string `json:"body" validate:"required,min=1,max=5000"`
}

type MessageResponse struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	SenderID      string     `json:"sender_id"`
	Body          string     `json:"body"`
	IsRead        bool       `json:"is_read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:            m.ID,
		ApplicationID: m.ApplicationID,
		SenderID:      m.SenderID,
		Body:          m.Body,
		IsRead:        m.IsRead,
		ReadAt:        m.ReadAt,
		CreatedAt:     m.CreatedAt,
	}
}

type ThreadResponse struct {
	ApplicationID string            `json:"application_id"`
	Messages      []MessageResponse `json:"messages"`
}
