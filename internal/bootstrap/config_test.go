package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, "http://localhost:3000", cfg.CORSAllowedOrigin)
	assert.Equal(t, 30, cfg.TokenExpiryDays)
	assert.Equal(t, 24*time.Hour, cfg.SweepGrace)
}

func TestLoadConfig_CORSOriginFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://blog.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://blog.example.com", cfg.CORSAllowedOrigin)
}

func TestLoadConfig_MissingSecrets(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
