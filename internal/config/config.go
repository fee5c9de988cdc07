package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DatabaseURL string

	// Security
	JWTSecret string

	// Application
	AppEnv       string
	Port         string
	LogLevel     string
	AllowOrigins string

	// Sessions
	SessionTTLHours int

	// Rate limiting
	AuthRateLimit    int
	AuthRateWindow   time.Duration
	APIRateLimit     int
	APIRateWindowSec int
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),

		AppEnv:       getEnv("APP_ENV", "development"),
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "http://localhost:3000"),

		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),

		AuthRateLimit:    getEnvInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:   time.Duration(getEnvInt("AUTH_RATE_WINDOW_MINUTES", 15)) * time.Minute,
		APIRateLimit:     getEnvInt("API_RATE_LIMIT", 100),
		APIRateWindowSec: getEnvInt("API_RATE_WINDOW_SECONDS", 60),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.SessionTTLHours <= 0 {
		return fmt.Errorf("SESSION_TTL_HOURS must be positive")
	}
	return nil
}

// SessionTTL returns the lifetime of a session cookie.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
