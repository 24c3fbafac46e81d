package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 720*time.Hour, cfg.Session.RememberMeTTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "@every 15m", cfg.Session.CleanupSchedule)
	assert.Equal(t, 5, cfg.Login.MaxFailedAttempts)
	assert.InDelta(t, 0.5, cfg.Login.IPRate, 0.0001)
	assert.False(t, cfg.UsePostgres())
	assert.False(t, cfg.UseRedis())
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{
		"VISA_ADDR":            ":9090",
		"VISA_DATABASE_URL":    "postgres://localhost/visa",
		"VISA_SESSION_TTL":     "1h",
		"VISA_REMEMBER_ME_TTL": "48h",
		"VISA_ALLOWED_ORIGINS": "https://admin.example.com,https://ops.example.com",
	}})
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.True(t, cfg.UsePostgres())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://admin.example.com", "https://ops.example.com"}, cfg.AllowedOrigins)
}

func TestParse_Validation(t *testing.T) {
	tests := map[string]map[string]string{
		"remember me shorter than session": {"VISA_SESSION_TTL": "10h", "VISA_REMEMBER_ME_TTL": "1h"},
		"non-positive session ttl":         {"VISA_SESSION_TTL": "0s"},
		"seed email without password":      {"VISA_SEED_ADMIN_EMAIL": "root@example.com"},
		"zero failed attempts":             {"VISA_LOGIN_MAX_FAILED_ATTEMPTS": "0"},
	}
	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(env.Options{Environment: vars})
			assert.Error(t, err)
		})
	}
}
