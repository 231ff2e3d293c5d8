package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// StorageConfig describes one media-storage account. The secondary account
// is optional; uploads mirror to it best-effort.
type StorageConfig struct {
	Type      string `yaml:"type"` // local, s3
	BasePath  string `yaml:"base_path"`
	BaseURL   string `yaml:"base_url"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Endpoint  string `yaml:"endpoint"`
}

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           int      `yaml:"port"`
		Env            string   `yaml:"env"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	Storage          StorageConfig  `yaml:"storage"`
	SecondaryStorage *StorageConfig `yaml:"secondary_storage"`

	Payment struct {
		SecretKey     string `yaml:"secret_key"`
		WebhookSecret string `yaml:"webhook_secret"`
		BaseURL       string `yaml:"base_url"`
		Currency      string `yaml:"currency"`
	} `yaml:"payment"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"` // bytes
		AllowedTypes []string `yaml:"allowed_types"`
	} `yaml:"upload"`

	App struct {
		BaseURL            string `yaml:"base_url"` // for links in emails
		FirstAdminEmail    string `yaml:"first_admin_email"`
		FirstAdminPassword string `yaml:"first_admin_password"`
	} `yaml:"app"`
}

var AppConfig *Config

// LoadConfig reads configuration once at process start. A .env file is
// honored if present. When DATABASE_URL is set, configuration comes from
// environment variables (test/deploy mode); otherwise config.yaml is read
// from CONFIG_PATH.
func LoadConfig() {
	_ = godotenv.Load()

	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = envInt("JWT_TTL", 60)

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = envInt("SMTP_PORT", 587)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Email.TemplatesDir = "templates"

	cfg.Storage.Type = envOr("STORAGE_TYPE", "local")
	cfg.Storage.BasePath = envOr("STORAGE_BASE_PATH", "./uploads")
	cfg.Storage.BaseURL = envOr("STORAGE_BASE_URL", "/api/v1/files")
	cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
	cfg.Storage.Region = os.Getenv("STORAGE_REGION")
	cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
	cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")

	// Secondary account only when explicitly configured.
	if os.Getenv("STORAGE2_TYPE") != "" {
		cfg.SecondaryStorage = &StorageConfig{
			Type:      os.Getenv("STORAGE2_TYPE"),
			BasePath:  os.Getenv("STORAGE2_BASE_PATH"),
			BaseURL:   os.Getenv("STORAGE2_BASE_URL"),
			Bucket:    os.Getenv("STORAGE2_BUCKET"),
			Region:    os.Getenv("STORAGE2_REGION"),
			AccessKey: os.Getenv("STORAGE2_ACCESS_KEY"),
			SecretKey: os.Getenv("STORAGE2_SECRET_KEY"),
			Endpoint:  os.Getenv("STORAGE2_ENDPOINT"),
		}
	}

	cfg.Payment.SecretKey = os.Getenv("PAYMENT_SECRET_KEY")
	cfg.Payment.WebhookSecret = os.Getenv("PAYMENT_WEBHOOK_SECRET")
	cfg.Payment.BaseURL = envOr("PAYMENT_BASE_URL", "https://api.paystack.co")
	cfg.Payment.Currency = envOr("PAYMENT_CURRENCY", "NGN")

	if types := os.Getenv("UPLOAD_ALLOWED_TYPES"); types != "" {
		cfg.Upload.AllowedTypes = strings.Split(types, ",")
	}

	cfg.App.BaseURL = envOr("APP_BASE_URL", "http://localhost:3000")
	cfg.App.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.App.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 20 * 1024 * 1024 // 20MB
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
			"video/mp4", "video/quicktime",
			"application/pdf", "application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		}
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "NGN"
	}
	if cfg.Payment.BaseURL == "" {
		cfg.Payment.BaseURL = "https://api.paystack.co"
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

// GetConfig returns the loaded configuration, loading it on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
