package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "ALLOWED_ORIGINS", "HISTORY_CAPACITY", "MAX_MESSAGE_LENGTH", "WELCOME_TEXT", "TIME_FORMAT", "SEND_BUFFER_SIZE", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 100, cfg.HistoryCapacity)
	assert.Equal(t, 500, cfg.MaxMessageLength)
	assert.Equal(t, "3:04:05 PM", cfg.TimeFormat)
	assert.Equal(t, 256, cfg.SendBuffer)
	assert.Equal(t, 10*time.Second, cfg.ShutdownWait)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://chat.example.com,https://www.example.com")
	t.Setenv("HISTORY_CAPACITY", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://chat.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.HistoryCapacity)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown environment", "ENVIRONMENT", "staging"},
		{"zero capacity", "HISTORY_CAPACITY", "0"},
		{"non numeric capacity", "HISTORY_CAPACITY", "lots"},
		{"non numeric port", "PORT", "http"},
		{"unknown log level", "LOG_LEVEL", "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadTrimsAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}
