package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	Bio          string     `gorm:"type:text" json:"bio"`
	Avatar       string     `json:"avatar"`

	VerificationToken string     `json:"-"`
	ResetToken        string     `json:"-"`
	ResetTokenExp     *time.Time `json:"-"`

	// Directors only; governs posting privileges through the trust tiers.
	TrustScore int `gorm:"default:0" json:"trust_score"`

	// Moderation state. All restriction fields are set and cleared together.
	Frozen               bool       `gorm:"default:false" json:"frozen"`
	RestrictionReason    *string    `json:"restriction_reason,omitempty"`
	RestrictionExpiresAt *time.Time `json:"restriction_expires_at,omitempty"`
	RestrictedBy         *string    `gorm:"type:uuid" json:"-"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

// Restricted reports whether the account currently blocks restricted
// actions. An expired freeze no longer restricts.
func (u *User) Restricted(now time.Time) bool {
	if !u.Frozen {
		return false
	}
	if u.RestrictionExpiresAt != nil && now.After(*u.RestrictionExpiresAt) {
		return false
	}
	return true
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
