package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8080")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "")
	t.Setenv("SESSION_FILE", "")
	t.Setenv("PENDING_POLL_CRON", "")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, AppName, cfg.AppName)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "@every 1m", cfg.PendingPollCron)
	assert.Contains(t, cfg.SessionFile, "session.json")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.consorcio.example")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "30")
	t.Setenv("SESSION_FILE", "/tmp/consorcio-test/session.json")
	t.Setenv("PENDING_POLL_CRON", "@every 30s")

	cfg := LoadConfig()
	assert.Equal(t, "https://api.consorcio.example", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "/tmp/consorcio-test/session.json", cfg.SessionFile)
	assert.Equal(t, "@every 30s", cfg.PendingPollCron)
}
