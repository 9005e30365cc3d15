package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/mixdeck/internal/shared"
	"github.com/urfave/cli/v3"
)

const configEnv = shared.EnvPrefix + "CONFIG"

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	configPath := os.Getenv(configEnv)
	if configPath == "" {
		configPath = "config.toml"
	}

	config := shared.DefaultConfig()
	if loaded, err := shared.LoadConfig(configPath); err == nil {
		config = loaded
	} else if !errors.Is(err, shared.ErrMissingConfig) {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
	}

	if err := config.ApplyEnv(); err != nil {
		logger.Fatalf("invalid environment: %v", err)
	}
	shared.SetLogLevel(logger, config.LogLevel())

	runner := NewRunner(RunnerOpts{Config: config, Logger: logger})

	app := &cli.Command{
		Name:     "mixdeck",
		Usage:    "Normalize and browse music metadata across local and cloud sources",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	err := app.Run(context.Background(), os.Args)
	if closeErr := runner.Close(); closeErr != nil {
		logger.Warn("failed to close database", "error", closeErr)
	}
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
