// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TokenTTL is how long a login token stays valid.
	// Set TOKEN_TTL_HOURS to override the 72-hour default.
	TokenTTL time.Duration

	// GapPolicy selects how the daily summary fills the grid between
	// entries. Valid values: continuation (default), strict.
	// Set LOG_GAP_POLICY to override.
	GapPolicy domain.GapPolicy

	// MaxBodyBytes caps the size of accepted request bodies.
	// Set MAX_BODY_BYTES to override the 1 MiB default.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "72"))
	if err != nil || ttlHours <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	cfg.GapPolicy, err = domain.ParseGapPolicy(getEnv("LOG_GAP_POLICY", string(domain.GapContinuation)))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_GAP_POLICY: %w", err)
	}

	cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
