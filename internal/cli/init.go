// Package cli consolidates the initialization steps shared by the
// command-line entry point: env loading, logging, configuration, and the
// session database.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"voucherdesk/internal/config"
	"voucherdesk/internal/log"
	"voucherdesk/internal/session"
)

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging at the given level string
// and installs it as the default logger.
func SetupLogger(level string) *log.Logger {
	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.DefaultConfig().Level
	}
	logger := log.New(log.Config{Level: parsed, Component: "voucherdesk"})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it. Exits the
// process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitSession opens the session database at the given path. Exits the
// process on failure.
func InitSession(logger *log.Logger, dbPath string) *session.Store {
	store, err := session.Open(dbPath)
	if err != nil {
		logger.Error("Failed to open session database", "error", err, "path", dbPath)
		os.Exit(1)
	}
	return store
}
