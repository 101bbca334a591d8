package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the connection string understood by gorm's postgres driver.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Twilio struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	Recipients []string
}

// Enabled reports whether approval alerts can be sent.
func (t Twilio) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != "" && t.FromNumber != "" && len(t.Recipients) > 0
}

type Admin struct {
	Username string
	Email    string
	Password string
}

type Config struct {
	Port               string
	Database           Database
	JWTSecret          string
	TokenTTL           time.Duration
	LogLevel           string
	Debug              bool
	CorsAllowedOrigins []string
	InteractionLimit   int
	Admin              Admin
	Twilio             Twilio
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Database: Database{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWTSecret:          getEnv("JWT_SECRET", ""),
		TokenTTL:           getEnvAsDuration("TOKEN_TTL", 72*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Debug:              getEnvAsBool("DEBUG", false),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		InteractionLimit:   getEnvAsInt("INTERACTION_RATE_LIMIT", 30),
		Admin: Admin{
			Username: getEnv("ADMIN_USERNAME", ""),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Twilio: Twilio{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
			Recipients: splitCSV(getEnv("ALERT_RECIPIENTS", "")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	d := c.Database
	if d.Host == "" || d.User == "" || d.Name == "" {
		return errors.New("database configuration is incomplete (DB_HOST, DB_USER, DB_NAME)")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.InteractionLimit <= 0 {
		return fmt.Errorf("INTERACTION_RATE_LIMIT must be positive, got %d", c.InteractionLimit)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}
