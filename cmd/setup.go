package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ac1714/chirp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file if missing, initializes the history
// database, and runs migrations.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadOrCreateConfig(configPath)

	r.logger.Info("initializing database", "path", config.Storage.HistoryPath)

	db, err := shared.OpenHistory(config.Storage)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Storage.HistoryPath)

	if config.Spotify.ClientID == "" {
		r.writePlain("⚠ No client ID configured yet.\n")
		r.writePlain("Set spotify.client_id in %s, then run 'chirp auth login'.\n", configPath)
	}

	return nil
}

// loadOrCreateConfig reads the config at path, writing the embedded
// template first when the file does not exist yet. Any failure falls
// back to defaults so setup can still initialize the database.
func (r *Runner) loadOrCreateConfig(path string) *shared.Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			return shared.DefaultConfig()
		}
		r.logger.Info("config file created", "path", path)
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "error", err)
		return shared.DefaultConfig()
	}
	return config
}
