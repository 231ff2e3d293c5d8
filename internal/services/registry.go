package services

import (
	"gorm.io/gorm"

	"skillport_backend/internal/config"
	"skillport_backend/internal/email"
	"skillport_backend/internal/payments"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/storage"
)

// ServiceContainer wires every service with its repositories once at
// startup.
type ServiceContainer struct {
	Auth         *AuthService
	User         *UserService
	Course       *CourseService
	Job          *JobService
	Application  *ApplicationService
	Message      *MessageService
	Notification *NotificationService
	Payment      *PaymentService
	Moderation   *ModerationService
	Upload       *UploadService
}

type Dependencies struct {
	DB               *gorm.DB
	Config           *config.Config
	Email            email.Provider
	Gateway          *payments.Gateway
	PrimaryStorage   storage.Storage
	SecondaryStorage storage.Storage
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository(deps.DB)
	refreshRepo := repositories.NewRefreshTokenRepository(deps.DB)
	courseRepo := repositories.NewCourseRepository(deps.DB)
	jobRepo := repositories.NewJobRepository(deps.DB)
	applicationRepo := repositories.NewApplicationRepository(deps.DB)
	messageRepo := repositories.NewMessageRepository(deps.DB)
	notificationRepo := repositories.NewNotificationRepository(deps.DB)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	auditRepo := repositories.NewAuditRepository(deps.DB)
	uploadRepo := repositories.NewUploadRepository(deps.DB)

	notifications := NewNotificationService(notificationRepo)

	return &ServiceContainer{
		Auth: NewAuthService(userRepo, refreshRepo, deps.Email,
			deps.Config.JWT.TTL, deps.Config.App.BaseURL),
		User:   NewUserService(userRepo),
		Course: NewCourseService(courseRepo, userRepo, paymentRepo, deps.Config.Payment.Currency),
		Job:    NewJobService(jobRepo, userRepo),
		Application: NewApplicationService(applicationRepo, jobRepo,
			userRepo, notifications),
		Message: NewMessageService(messageRepo, applicationRepo, jobRepo,
			userRepo, notifications),
		Notification: notifications,
		Payment: NewPaymentService(deps.DB, paymentRepo, courseRepo,
			userRepo, deps.Gateway, deps.Email, notifications,
			deps.Config.Payment.Currency),
		Moderation: NewModerationService(deps.DB, userRepo, courseRepo,
			auditRepo, deps.Email, notifications),
		Upload: NewUploadService(uploadRepo, deps.PrimaryStorage,
			deps.SecondaryStorage, deps.Config.Upload.MaxSize,
			deps.Config.Upload.AllowedTypes),
	}
}
