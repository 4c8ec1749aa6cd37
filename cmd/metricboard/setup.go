package main

import (
	"context"
	"fmt"

	"github.com/newthinker/metricboard/internal/app"
	"github.com/newthinker/metricboard/internal/config"
	"github.com/newthinker/metricboard/internal/logger"
	"go.uber.org/zap"
)

// loadConfig reads --config, falling back to defaults, and validates it.
func loadConfig() (*config.Config, bool, error) {
	if cfgFile == "" {
		return config.Defaults(), false, nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, false, fmt.Errorf("loading config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, false, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, true, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	opts := logger.Options{
		Development: debug || cfg.Log.Development,
		Level:       cfg.Log.Level,
	}
	if debug {
		opts.Level = "debug"
	}
	return logger.New(opts)
}

// withApp handles config, logger and app setup for a command.
func withApp(fn func(ctx context.Context, a *app.App, log *zap.Logger) error) error {
	cfg, loaded, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	if !loaded {
		log.Debug("no config file specified, using defaults")
	}

	store, err := app.OpenStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}

	return fn(context.Background(), app.New(cfg, store, log), log)
}
