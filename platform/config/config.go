// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	SMTP      SMTPConfig
	MinIO     MinIOConfig
	Gotenberg GotenbergConfig
	Scheduler SchedulerConfig
	Recommend RecommendConfig
	RateLimit RateLimitConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Environment string
	Port        string
	BaseURL     string
	CORSOrigins []string
	AlertEmail  string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// MinIOConfig holds object storage settings.
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	PresignExpiry   time.Duration
}

// GotenbergConfig holds the PDF rendering service settings.
type GotenbergConfig struct {
	URL     string
	Timeout time.Duration
}

// SchedulerConfig holds background job settings.
type SchedulerConfig struct {
	RedisURL      string
	Concurrency   int
	ReminderLead  time.Duration
	PollInterval  time.Duration
}

// RecommendConfig holds recommendation engine tuning.
type RecommendConfig struct {
	// BudgetTolerance is the multiplier applied to a client's budget when
	// matching property prices. 1.15 allows properties up to 15% over budget.
	BudgetTolerance float64
	MaxResults      int
}

// RateLimitConfig holds request throttling settings.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	AuthPerMinute     int
}

// Load reads configuration from environment variables, applying defaults
// where sensible. A .env file in the working directory is loaded first if
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "8080"),
			BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
			CORSOrigins: []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
			AlertEmail:  getEnv("LEAD_ALERT_EMAIL", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			AccessTTL:  getDurationEnv("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTTL: getDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getIntEnv("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@estatecrm.local"),
			FromName: getEnv("SMTP_FROM_NAME", "Estate CRM"),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:          getBoolEnv("MINIO_USE_SSL", false),
			Bucket:          getEnv("MINIO_BUCKET", "estate-crm"),
			PresignExpiry:   getDurationEnv("MINIO_PRESIGN_EXPIRY", 15*time.Minute),
		},
		Gotenberg: GotenbergConfig{
			URL:     getEnv("GOTENBERG_URL", "http://localhost:3001"),
			Timeout: getDurationEnv("GOTENBERG_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Concurrency:  getIntEnv("SCHEDULER_CONCURRENCY", 10),
			ReminderLead: getDurationEnv("TASK_REMINDER_LEAD", 24*time.Hour),
			PollInterval: getDurationEnv("SCHEDULER_POLL_INTERVAL", 15*time.Minute),
		},
		Recommend: RecommendConfig{
			BudgetTolerance: getFloatEnv("RECOMMEND_BUDGET_TOLERANCE", 1.15),
			MaxResults:      getIntEnv("RECOMMEND_MAX_RESULTS", 10),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getFloatEnv("RATE_LIMIT_RPS", 10),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 20),
			AuthPerMinute:     getIntEnv("RATE_LIMIT_AUTH_PER_MINUTE", 5),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWT.Secret) < 32 && c.App.Environment != "development" {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters outside development")
	}
	if c.Recommend.BudgetTolerance < 1.0 {
		return fmt.Errorf("RECOMMEND_BUDGET_TOLERANCE must be >= 1.0, got %v", c.Recommend.BudgetTolerance)
	}
	return nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getFloatEnv(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
