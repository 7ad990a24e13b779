package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for the duration of the test.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"PAIRS_SERVER_PORT":       "",
		"PAIRS_SERVER_LOG_LEVEL":  "",
		"PAIRS_AUTH_TOKEN_SECRET": "",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5175, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:5173", cfg.Server.ClientOrigin)
	assert.Equal(t, DevTokenSecret, cfg.Auth.TokenSecret)
	assert.Equal(t, 720*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 2*time.Hour, cfg.Store.IdleTTL)
	assert.Equal(t, ":5175", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"PAIRS_SERVER_PORT":          "9090",
		"PAIRS_SERVER_LOG_LEVEL":     "debug",
		"PAIRS_SERVER_CLIENT_ORIGIN": "https://pairs.example.com",
		"PAIRS_AUTH_TOKEN_SECRET":    "a-much-longer-secret-value",
		"PAIRS_AUTH_TOKEN_TTL":       "24h",
		"PAIRS_DAILY_SALT":           "pepper",
		"PAIRS_STORE_IDLE_TTL":       "15m",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "https://pairs.example.com", cfg.Server.ClientOrigin)
	assert.Equal(t, "a-much-longer-secret-value", cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "pepper", cfg.Daily.Salt)
	assert.Equal(t, 15*time.Minute, cfg.Store.IdleTTL)
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"PAIRS_SERVER_PORT": "70000"}},
		{"unknown log level", map[string]string{"PAIRS_SERVER_LOG_LEVEL": "verbose"}},
		{"short secret", map[string]string{"PAIRS_AUTH_TOKEN_SECRET": "short"}},
		{"origin not a url", map[string]string{"PAIRS_SERVER_CLIENT_ORIGIN": "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupEnv(t, tt.env)
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
