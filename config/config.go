// Package config provides application configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Email    EmailConfig
	Auth     AuthConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Environment  string
}

// DatabaseConfig holds ledger database configuration.
// URL accepts a postgres:// connection string or a SQLite file path.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// GeminiConfig holds Google Gemini configuration.
type GeminiConfig struct {
	APIKey string
}

// EmailConfig holds email service configuration.
type EmailConfig struct {
	ResendAPIKey     string
	FromName         string
	FromEmail        string
	DefaultRecipient string
}

// AuthConfig holds authentication configuration. With Enabled false every
// request runs as the anonymous development principal.
type AuthConfig struct {
	Enabled      bool
	JWTSecret    string
	TokenExpiry  time.Duration
	DevUserEmail string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			Environment:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", "finance_assistant.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Email: EmailConfig{
			ResendAPIKey:     getEnv("RESEND_API_KEY", ""),
			FromName:         getEnv("RESEND_FROM_NAME", "Finance Assistant"),
			FromEmail:        getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			DefaultRecipient: getEnv("REPORT_DEFAULT_RECIPIENT", ""),
		},
		Auth: AuthConfig{
			Enabled:      getEnvAsBool("AUTH_ENABLED", false),
			JWTSecret:    getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry:  getEnvAsDuration("JWT_EXPIRY", 15*time.Minute),
			DevUserEmail: getEnv("DEV_USER_EMAIL", ""),
		},
	}
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
