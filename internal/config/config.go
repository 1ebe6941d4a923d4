package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/MatiasdeBuren/consorcio-console/internal/logging"
)

const AppName = "consorcio-console"

type Config struct {
	AppName string

	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Local session persistence (token + user data)
	SessionFile string

	// Pending-reservations badge refresh schedule (robfig/cron spec)
	PendingPollCron string
}

// LoadConfig reads configuration from the environment, loading a local .env
// first if one exists. Missing required values are fatal.
func LoadConfig() *Config {
	// Best effort: running outside a configured shell is the common dev case.
	_ = godotenv.Load()

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		logging.Logger.Fatal("API_BASE_URL env var is missing")
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("HTTP_TIMEOUT_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			logging.Logger.Fatalf("Invalid HTTP_TIMEOUT_SECONDS '%s'", raw)
		}
		timeout = time.Duration(secs) * time.Second
	}

	sessionFile := os.Getenv("SESSION_FILE")
	if sessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logging.Logger.WithError(err).Fatal("Cannot resolve home directory for session file")
		}
		sessionFile = filepath.Join(home, ".consorcio", "session.json")
	}

	pollCron := os.Getenv("PENDING_POLL_CRON")
	if pollCron == "" {
		pollCron = "@every 1m"
	}

	return &Config{
		AppName:         AppName,
		APIBaseURL:      baseURL,
		HTTPTimeout:     timeout,
		SessionFile:     sessionFile,
		PendingPollCron: pollCron,
	}
}
