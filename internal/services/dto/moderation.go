package dto

import (
	"encoding/json"
	"time"

	"skillport_backend/internal/models"
)

type FreezeUserRequest struct {
	Reason    string     `json:"reason" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at" validate:"omitempty"`
}

type UnfreezeUserRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type ReviewLessonRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note" validate:"omitempty,max=2000"`
	Reason  string `json:"reason" validate:"required"`
}

type AdjustTrustScoreRequest struct {
	Score  int    `json:"score" validate:"min=-100,max=200"`
	Reason string `json:"reason" validate:"required"`
}

type AuditListQuery struct {
	PaginationQuery
	ActorID    string `form:"actor_id" validate:"omitempty,uuid"`
	TargetID   string `form:"target_id" validate:"omitempty,uuid"`
	TargetType string `form:"target_type" validate:"omitempty,max=50"`
}

type AuditLogResponse struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   string          `json:"target_id"`
	Before     json.RawMessage `json:"before"`
	After      json.RawMessage `json:"after"`
	Reason     string          `json:"reason"`
	CreatedAt  time.Time       `json:"created_at"`
}

func ToAuditLogResponse(l *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:         l.ID,
		ActorID:    l.ActorID,
		Action:     l.Action,
		TargetType: l.TargetType,
		TargetID:   l.TargetID,
		Before:     json.RawMessage(l.Before),
		After:      json.RawMessage(l.After),
		Reason:     l.Reason,
		CreatedAt:  l.CreatedAt,
	}
}
