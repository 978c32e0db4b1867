package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RequireToken)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, time.Minute, cfg.VersionCacheTTL)
	assert.Len(t, cfg.Warnings, 2)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://kpi.example.com, https://admin.example.com ,")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("AUTH_REQUIRE_TOKEN", "false")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://kpi.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RequireToken)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsWeakSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "kisa")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadBootstrapAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("BOOTSTRAP_ADMIN_ID", "patron")
	t.Setenv("BOOTSTRAP_DEVICE_FINGERPRINT", "fp-ofis")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "ilk-sifre")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "patron", cfg.BootstrapAdminID)
	assert.Equal(t, "fp-ofis", cfg.BootstrapDeviceFingerprint)
}
