// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command server runs the ReelMatch HTTP API: it loads the dataset, fits or
// restores the recommendation model, and serves recommendations until
// interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/ingest"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/pipeline"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// modelSnapshotName is the key the fitted model is stored under.
const modelSnapshotName = "model"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().
		Str("dataset", cfg.Data.Path).
		Int("port", cfg.Server.Port).
		Msg("Starting ReelMatch")

	items, err := loadItems(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}
	logging.Info().Int("items", len(items)).Msg("Dataset loaded")

	rec, closeStore, err := buildRecommender(items, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommender")
	}
	defer closeStore()

	server := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.NewRouter(api.NewHandler(rec), api.RouterConfig{
			CORSOrigins: cfg.Server.CORSOrigins,
			RateLimit:   cfg.Server.RateLimit,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}

// loadItems loads the CSV dataset, writing the built-in sample first when
// the file is missing and that behavior is enabled.
func loadItems(cfg *config.Config) ([]recommend.Item, error) {
	if _, err := os.Stat(cfg.Data.Path); os.IsNotExist(err) && cfg.Data.WriteSampleIfMissing {
		logging.Info().Str("path", cfg.Data.Path).Msg("Dataset missing, writing sample")
		if err := ingest.WriteSampleDataset(cfg.Data.Path); err != nil {
			return nil, err
		}
	}

	loader, err := ingest.NewLoader(cfg.Data.Columns, logging.Logger())
	if err != nil {
		return nil, err
	}
	return loader.LoadFile(cfg.Data.Path)
}

// buildRecommender fits or restores the model, using snapshot storage when
// enabled. The returned func closes the store; it is a no-op when storage
// is disabled.
func buildRecommender(items []recommend.Item, cfg *config.Config) (*pipeline.Recommender, func(), error) {
	if !cfg.Storage.Enabled {
		rec, err := pipeline.New(items, &cfg.Recommend, logging.Logger())
		return rec, func() {}, err
	}

	store, err := storage.Open(cfg.Storage.Dir, logging.Logger())
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot store: %w", err)
	}

	rec, err := pipeline.NewWithStore(items, &cfg.Recommend, store, modelSnapshotName, logging.Logger())
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}
	return rec, closeStore, nil
}
