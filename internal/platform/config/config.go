package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers for the draft and settings slots.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// SMTPConfig configures the mailer used to send exported invoices.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Enabled reports whether enough is set to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	StorageDriver string
	StorageDir    string
	DatabaseURL   string
	EnableDBCheck bool

	CORSAllowedOrigins []string

	// Backend of record for submitted invoices. Empty disables submission.
	BackendBaseURL  string
	BackendTimeout  time.Duration
	BackendRetryMax int

	ExportRateLimit    string
	ExportCaptureWidth int

	SMTP SMTPConfig

	S3Bucket string
	S3Region string

	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("BACKEND_BASE_URL", "")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("BACKEND_RETRY_MAX", 3)
	v.SetDefault("EXPORT_RATE_LIMIT", "20-M")
	v.SetDefault("EXPORT_CAPTURE_WIDTH", 794)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SMTP_FROM_NAME", "Invoice Wizard")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "invoice-events")

	// environment variables override the defaults above
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT not set, using default", slog.String("port", cfg.Port))
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		slog.Warn("Invalid LOG_LEVEL, defaulting to info", slog.String("value", v.GetString("LOG_LEVEL")))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	switch cfg.StorageDriver {
	case StorageMemory, StorageFile, StoragePostgres:
	default:
		slog.Warn("Unknown STORAGE_DRIVER, defaulting to file", slog.String("value", cfg.StorageDriver))
		cfg.StorageDriver = StorageFile
	}
	cfg.StorageDir = v.GetString("STORAGE_DIR")
	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")
	if cfg.StorageDriver == StoragePostgres && cfg.DatabaseURL == "" {
		slog.Warn("STORAGE_DRIVER is postgres but PGSQL_URL is not set, falling back to file storage")
		cfg.StorageDriver = StorageFile
	}

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.BackendBaseURL = strings.TrimRight(v.GetString("BACKEND_BASE_URL"), "/")
	if cfg.BackendBaseURL == "" {
		slog.Warn("BACKEND_BASE_URL not set. Invoice submission is disabled.")
	}
	timeoutStr := v.GetString("BACKEND_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
		slog.Warn("Invalid BACKEND_TIMEOUT, using default", slog.String("value", timeoutStr), slog.Duration("default", timeout))
	}
	cfg.BackendTimeout = timeout
	cfg.BackendRetryMax = v.GetInt("BACKEND_RETRY_MAX")
	if cfg.BackendRetryMax < 0 {
		cfg.BackendRetryMax = 0
	}

	cfg.ExportRateLimit = v.GetString("EXPORT_RATE_LIMIT")
	cfg.ExportCaptureWidth = v.GetInt("EXPORT_CAPTURE_WIDTH")
	if cfg.ExportCaptureWidth < 400 {
		slog.Warn("EXPORT_CAPTURE_WIDTH too small, using default", slog.Int("value", cfg.ExportCaptureWidth))
		cfg.ExportCaptureWidth = 794
	}

	cfg.SMTP = SMTPConfig{
		Host:     v.GetString("SMTP_HOST"),
		Port:     v.GetInt("SMTP_PORT"),
		Username: v.GetString("SMTP_USERNAME"),
		Password: v.GetString("SMTP_PASSWORD"),
		From:     v.GetString("SMTP_FROM"),
		FromName: v.GetString("SMTP_FROM_NAME"),
	}
	if !cfg.SMTP.Enabled() {
		slog.Warn("SMTP_HOST or SMTP_FROM not set. Emailing invoices is disabled.")
	}

	cfg.S3Bucket = v.GetString("S3_BUCKET")
	cfg.S3Region = v.GetString("S3_REGION")

	cfg.KafkaBrokers = splitList(v.GetString("KAFKA_BROKERS"))
	cfg.KafkaTopic = v.GetString("KAFKA_TOPIC")

	return cfg
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
