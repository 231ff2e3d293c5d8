package handlers

import (
	"skillport_backend/internal/payments"
	"skillport_backend/internal/services"
	"skillport_backend/internal/validator"
	"skillport_backend/pkg/apperrors"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Job          *JobHandler
	Application  *ApplicationHandler
	Message      *MessageHandler
	Notification *NotificationHandler
	Payment      *PaymentHandler
	Moderation   *ModerationHandler
	Upload       *UploadHandler
}

func NewAppHandlers(svcs *services.ServiceContainer, gateway *payments.Gateway, debug bool) *AppHandlers {
	base := NewBaseHandler(validator.New(), &apperrors.GinErrorHandler{Debug: debug})

	return &AppHandlers{
		Auth:         NewAuthHandler(base, svcs.Auth),
		User:         NewUserHandler(base, svcs.User),
		Course:       NewCourseHandler(base, svcs.Course),
		Job:          NewJobHandler(base, svcs.Job),
		Application:  NewApplicationHandler(base, svcs.Application),
		Message:      NewMessageHandler(base, svcs.Message),
		Notification: NewNotificationHandler(base, svcs.Notification),
		Payment:      NewPaymentHandler(base, svcs.Payment, gateway),
		Moderation:   NewModerationHandler(base, svcs.Moderation),
		Upload:       NewUploadHandler(base, svcs.Upload),
	}
}
