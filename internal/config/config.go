// ReelMatch - Content-Based Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads application configuration from defaults, an optional
// YAML file, and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/reelmatch/internal/ingest"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Config is the top-level application configuration.
type Config struct {
	Server    ServerConfig     `json:"server"`
	Logging   logging.Config   `json:"logging"`
	Data      DataConfig       `json:"data"`
	Storage   StorageConfig    `json:"storage"`
	Recommend recommend.Config `json:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// RateLimit is the per-client request budget per minute. 0 disables
	// rate limiting.
	RateLimit int `json:"rate_limit"`

	// CORSOrigins lists allowed cross-origin hosts. Empty allows none.
	CORSOrigins []string `json:"cors_origins"`
}

// DataConfig holds dataset settings.
type DataConfig struct {
	// Path is the CSV dataset to load at startup.
	Path string `json:"path"`

	// Columns maps dataset headers to item fields.
	Columns ingest.ColumnMapping `json:"columns"`

	// WriteSampleIfMissing writes the built-in sample dataset to Path when
	// no file exists there, so a fresh install serves something.
	WriteSampleIfMissing bool `json:"write_sample_if_missing"`
}

// StorageConfig holds model snapshot settings.
type StorageConfig struct {
	// Enabled controls whether fitted models are persisted and restored.
	Enabled bool `json:"enabled"`

	// Dir is the BadgerDB directory for snapshots.
	Dir string `json:"dir"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8380,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       120,
		},
		Logging: logging.DefaultConfig(),
		Data: DataConfig{
			Path:                 "data/movies.csv",
			Columns:              ingest.DefaultColumnMapping(),
			WriteSampleIfMissing: true,
		},
		Storage: StorageConfig{
			Enabled: true,
			Dir:     "data/snapshots",
		},
		Recommend: *recommend.DefaultConfig(),
	}
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Data.Path == "" {
		return fmt.Errorf("data.path must not be empty")
	}
	if c.Storage.Enabled && c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir must not be empty when storage is enabled")
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
