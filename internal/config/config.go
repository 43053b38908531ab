// Package config resolves runtime settings from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// DBPath is the SQLite snapshot database location.
	DBPath string

	// POTrustDays is the default trust window for confirmed incoming
	// supply, in days from the run date.
	POTrustDays int

	// ProgressEvery is how many orders pass between progress updates.
	ProgressEvery int

	// LogRuns enables structured run telemetry on stderr.
	LogRuns bool
}

// Load reads configuration from environment variables and an optional
// .env file. Every value has a working default; a missing environment
// is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:        getenv("PLANNR_DB", defaultDBPath()),
		POTrustDays:   getenvInt("PLANNR_PO_TRUST_DAYS", 49),
		ProgressEvery: getenvInt("PLANNR_PROGRESS_EVERY", 100),
		LogRuns:       getenvBool("PLANNR_LOG_RUNS", false),
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "plannr.db"
	}
	return filepath.Join(home, ".plannr", "plannr.db")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}
