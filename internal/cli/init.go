// Package cli provides common initialization shared by the cmd
// binaries.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"outlay/internal/config"
	applog "outlay/internal/log"
	"outlay/internal/store"
)

// SetupLogger initializes structured logging with default settings and
// installs it as the process default.
func SetupLogger(component string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Component = component
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore picks the record store backend from configuration.
// Returns the store or exits the process on failure.
func OpenStore(logger *applog.Logger, cfg *config.Config) store.RecordStore {
	if cfg.DataBackend == "sqlite" {
		s, err := store.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store",
				applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Initialized SQLite store", "path", cfg.SQLiteDBPath)
		return s
	}

	logger.Info("Initialized memory store")
	return store.NewMemoryStore()
}

// CloseStore closes the store when the backend supports it.
func CloseStore(logger *applog.Logger, s store.RecordStore) {
	if closer, ok := s.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close store", applog.FieldError, err)
		}
	}
}
