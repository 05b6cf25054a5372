package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/ac1714/chirp/internal/auth"
	"github.com/ac1714/chirp/internal/player"
	"github.com/ac1714/chirp/internal/search"
	"github.com/ac1714/chirp/internal/services"
	"github.com/ac1714/chirp/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	var store *auth.Store
	var manager *auth.Manager
	var client *services.Client
	var pipeline *search.Pipeline

	if s, err := auth.NewStore(config.Storage.TokenPath); err == nil {
		store = s
	} else {
		logger.Warn("token store unavailable", "error", err)
	}

	if store != nil && config.Spotify.ClientID != "" {
		if m, err := auth.NewManager(config.Spotify, store); err == nil {
			manager = m
		} else {
			logger.Warn("auth manager unavailable", "error", err)
		}
	}

	if manager != nil {
		classifier := services.NewClassifier(manager)
		client = services.NewClient("", httpClient, manager, classifier)
		pipeline = search.NewPipeline(search.Options{
			Client: client,
			Market: config.Spotify.Market,
			Limit:  config.Search.SuggestLimit,
			Rate:   time.Duration(config.Search.RequestRateMS) * time.Millisecond,
			Burst:  config.Search.RequestRateBurst,
			Logger: logger,
		})
	}

	controller := player.NewController(player.NewBeepFactory(httpClient))

	runner := NewRunner(RunnerOpts{
		Config:     config,
		Store:      store,
		Manager:    manager,
		Client:     client,
		Pipeline:   pipeline,
		Controller: controller,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "chirp",
		Usage:    "Search Spotify and play track previews from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	err := app.Run(context.Background(), os.Args)

	if store != nil {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("error closing token store", "error", closeErr)
		}
	}

	if err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
