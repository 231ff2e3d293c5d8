package models

type UserRole string
type UserStatus string
type JobStatus string
type ApplicationStatus string
type PaymentStatus string

const (
	UserRoleTalent   UserRole = "talent"
	UserRoleDirector UserRole = "director"
	UserRoleAdmin    UserRole = "admin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"

	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn   ApplicationStatus = "withdrawn"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)
