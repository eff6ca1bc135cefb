package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"voucherdesk/internal/log"
)

const (
	BackendAPI    = "api"
	BackendMemory = "memory"
)

type Config struct {
	// Remote service
	APIBaseURL string
	// HTTPTimeout bounds each request; zero disables client-side
	// timeouts and leaves cancellation to the caller's context.
	HTTPTimeout time.Duration

	// Session persistence
	SessionDBPath string

	// Backend selection: "api" talks to the real service, "memory" runs
	// against the seeded in-process fake.
	Backend string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		APIBaseURL:    getEnv("VOUCHER_API_URL", ""),
		HTTPTimeout:   getEnvDuration("HTTP_TIMEOUT", 0),
		SessionDBPath: getEnv("SESSION_DB_PATH", "./data/voucherdesk.db"),
		Backend:       getEnv("DATA_BACKEND", BackendAPI),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Backend {
	case BackendAPI:
		if strings.TrimSpace(c.APIBaseURL) == "" {
			errs = append(errs, "VOUCHER_API_URL is required when DATA_BACKEND is 'api'")
		} else if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("invalid API base URL '%s'", c.APIBaseURL))
		}
	case BackendMemory:
		// no remote configuration needed
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [api memory]", c.Backend))
	}

	if c.HTTPTimeout < 0 {
		errs = append(errs, "HTTP_TIMEOUT cannot be negative")
	}
	if c.SessionDBPath == "" {
		errs = append(errs, "session database path cannot be empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
