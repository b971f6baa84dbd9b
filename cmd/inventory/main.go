// Package main runs a short example session against a file-backed product store.
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/product/app"
	"github.com/spf13/afero"
)

func main() {
	// Load configuration
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		log.Fatalf("Error loading configuration: %v", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	// Set up structured logging
	logLevel, logger := newLogger(cfg)
	logger.Info("Inventory example starting...", "config_log_level", cfg.Log.Level, "actual_slog_level", logLevel.String())

	fsys := afero.NewOsFs()
	st := app.SetupStore(cfg, fsys, logger)

	if cfg.Seed.File != "" {
		seedFile, err := fsys.Open(cfg.Seed.File)
		if err != nil {
			logger.Error("Unable to open seed file", "path", cfg.Seed.File, "error", err)
		} else {
			added, err := app.Seed(st, seedFile, logger)
			_ = seedFile.Close()
			if err != nil {
				logger.Error("Error seeding products", "added", added, "error", err)
			} else {
				logger.Info("Seed products added", "added", added)
			}
		}
	} else if _, err := st.AddProduct(app.SampleProduct); err != nil {
		logger.Warn("Sample product not added", "error", err)
	}

	if err := app.RunExample(st, logger); err != nil {
		logger.Error("Example failed", "error", err)
	}
}

func newLogger(cfg *config.Config) (slog.Level, *slog.Logger) {
	logLevel := toLevel(cfg.Log.Level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(os.Stdout, loggerOpts)
	logger := slog.New(logHandler)
	return logLevel, logger
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
