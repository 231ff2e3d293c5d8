package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/config"
	"skillport_backend/internal/email"
	"skillport_backend/internal/handlers"
	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/payments"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/routes"
	"skillport_backend/internal/services"
	"skillport_backend/internal/storage"
)

// Run boots the whole application: config, database, external clients,
// services and the HTTP server. It blocks until the server exits.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	primaryStorage, err := storage.NewStorage(storageConfig(cfg.Storage))
	if err != nil {
		return fmt.Errorf("failed to initialize primary storage: %w", err)
	}
	var secondaryStorage storage.Storage
	if cfg.SecondaryStorage != nil {
		secondaryStorage, err = storage.NewStorage(storageConfig(*cfg.SecondaryStorage))
		if err != nil {
			// The secondary account is best-effort from the start.
			logger.Warn("secondary storage unavailable, mirroring disabled", "error", err)
			secondaryStorage = nil
		}
	}

	emailProvider := buildEmailProvider(cfg)

	gateway := payments.NewGateway(payments.Config{
		SecretKey:     cfg.Payment.SecretKey,
		WebhookSecret: cfg.Payment.WebhookSecret,
		BaseURL:       cfg.Payment.BaseURL,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	settings, err := gateway.WaitForSettings(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("payment gateway unreachable: %w", err)
	}
	logger.Info("payment gateway ready", "merchant", settings.MerchantName)

	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("failed to seed first admin: %w", err)
	}

	svcs := services.NewServiceContainer(services.Dependencies{
		DB:               db,
		Config:           cfg,
		Email:            emailProvider,
		Gateway:          gateway,
		PrimaryStorage:   primaryStorage,
		SecondaryStorage: secondaryStorage,
	})

	debug := cfg.Server.Env != "production"
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	routes.Register(engine, handlers.NewAppHandlers(svcs, gateway, debug), cfg.Server.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return engine.Run(addr)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Course{},
		&models.CourseModule{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Job{},
		&models.Application{},
		&models.Message{},
		&models.Notification{},
		&models.Payment{},
		&models.AuditLog{},
		&models.Upload{},
	)
}

func storageConfig(sc config.StorageConfig) storage.Config {
	return storage.Config{
		Type:      sc.Type,
		BasePath:  sc.BasePath,
		BaseURL:   sc.BaseURL,
		Bucket:    sc.Bucket,
		Region:    sc.Region,
		AccessKey: sc.AccessKey,
		SecretKey: sc.SecretKey,
		Endpoint:  sc.Endpoint,
	}
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("no SMTP host configured, emails go to the log")
		return &email.ConsoleProvider{}
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, email.NewTemplateRenderer(cfg.Email.TemplatesDir))
}

// seedFirstAdmin creates the configured admin account on first boot so a
// fresh deployment has someone able to moderate.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.App.FirstAdminEmail == "" || cfg.App.FirstAdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(cfg.App.FirstAdminEmail); err == nil {
		return nil
	} else if err != repositories.ErrUserNotFound {
		return err
	}

	hash, err := auth.HashPassword(cfg.App.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:             cfg.App.FirstAdminEmail,
		Name:              "Administrator",
		PasswordHash:      hash,
		Role:              models.UserRoleAdmin,
		Status:            models.UserStatusActive,
		IsVerified:        true,
		VerificationToken: uuid.NewString(),
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	logger.Info("seeded first admin", "email", cfg.App.FirstAdminEmail)
	return nil
}
