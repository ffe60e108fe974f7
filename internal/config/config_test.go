package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "true")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, 90*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Midtrans.IsProduction)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFallsBackOnBadValues(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("JWT_TTL", "forever")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "maybe")

	cfg := Load()

	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Midtrans.IsProduction)
	assert.Equal(t, "LEDGER_MAIL", cfg.Notification.MailTopic)
}
