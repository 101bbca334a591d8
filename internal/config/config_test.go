package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDatabaseEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "disasters")
}

func TestLoadDefaults(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("ALERT_RECIPIENTS", "")
	t.Setenv("INTERACTION_RATE_LIMIT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CorsAllowedOrigins)
	assert.Equal(t, 30, cfg.InteractionLimit)
	assert.False(t, cfg.Twilio.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "dbname=disasters")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestTwilioEnabled(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_FROM_NUMBER", "+15550000000")
	t.Setenv("ALERT_RECIPIENTS", "+15551111111, ,+15552222222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Twilio.Enabled())
	assert.Equal(t, []string{"+15551111111", "+15552222222"}, cfg.Twilio.Recipients)
}
