package dto

import (
	"time"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2,max=100"`
	Bio    *string `json:"bio" validate:"omitempty,max=2000"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

type UserListQuery struct {
	PaginationQuery
	Role   string `form:"role" validate:"omitempty,oneof=talent director admin"`
	Status string `form:"status" validate:"omitempty,oneof=pending active suspended"`
	Search string `form:"search" validate:"omitempty,max=100"`
}

// UserResponse is the public shape of a user. Sensitive and moderation
// fields never leave the service layer through it.
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Bio        string    `json:"bio,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	TrustScore int       `json:"trust_score"`
	TrustTier  string    `json:"trust_tier"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminUserResponse extends the public shape with moderation state.
type AdminUserResponse struct {
	UserResponse
	Status               string     `json:"status"`
	IsVerified           bool       `json:"is_verified"`
	Frozen               bool       `json:"frozen"`
	RestrictionReason    *string    `json:"restriction_reason,omitempty"`
	RestrictionExpiresAt *time.Time `json:"restriction_expires_at,omitempty"`
}

// ToUserResponse redacts a user for public consumption. Email is only
// included when the requester is the user themselves or an admin.
func ToUserResponse(u *models.User, includeEmail bool) UserResponse {
	resp := UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Role:       string(u.Role),
		Bio:        u.Bio,
		Avatar:     u.Avatar,
		TrustScore: u.TrustScore,
		TrustTier:  string(auth.TierOf(u.TrustScore)),
		CreatedAt:  u.CreatedAt,
	}
	if includeEmail {
		resp.Email = u.Email
	}
	return resp
}

func ToAdminUserResponse(u *models.User) AdminUserResponse {
	return AdminUserResponse{
		UserResponse:         ToUserResponse(u, true),
		Status:               string(u.Status),
		IsVerified:           u.IsVerified,
		Frozen:               u.Frozen,
		RestrictionReason:    u.RestrictionReason,
		RestrictionExpiresAt: u.RestrictionExpiresAt,
	}
}
