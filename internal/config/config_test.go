package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"DATABASE_URL": "postgres://localhost/finebook",
		"JWT_SECRET":   "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, 120, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 1024, cfg.IdentityCacheSize)
	assert.Empty(t, cfg.RedisURL)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(map[string]string{
		"STORE":          "memory",
		"JWT_SECRET":     "s3cret",
		"PORT":           "9000",
		"REDIS_URL":      "redis://localhost:6379/0",
		"RATE_LIMIT":     "5",
		"RATE_WINDOW":    "10s",
		"LOG_FORMAT":     "json",
		"FCM_PROJECT_ID": "finebook-dev",
	})
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.RateWindow)
	assert.Equal(t, "finebook-dev", cfg.FCMProjectID)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"missing database url", map[string]string{"JWT_SECRET": "x"}, "DATABASE_URL"},
		{"missing secret", map[string]string{"STORE": "memory"}, "JWT_SECRET"},
		{"unknown store", map[string]string{"STORE": "bolt", "JWT_SECRET": "x"}, "STORE"},
		{"bad log format", map[string]string{"STORE": "memory", "JWT_SECRET": "x", "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"bad rate limit", map[string]string{"STORE": "memory", "JWT_SECRET": "x", "REDIS_URL": "redis://r", "RATE_LIMIT": "0"}, "RATE_LIMIT"},
		{"bad duration", map[string]string{"STORE": "memory", "JWT_SECRET": "x", "RATE_WINDOW": "soon"}, "parse environment variables"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
