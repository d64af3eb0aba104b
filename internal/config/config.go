// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package config loads Reelstats configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
package config

import (
	"fmt"
	"time"
)

// Dataset engines.
const (
	EngineCSV    = "csv"
	EngineDuckDB = "duckdb"
)

// Genre matching modes.
const (
	GenreMatchToken     = "token"
	GenreMatchSubstring = "substring"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig describes where the movie table comes from and how the
// dashboard slices it.
type DatasetConfig struct {
	Path           string `koanf:"path"`
	Engine         string `koanf:"engine"`          // csv or duckdb
	GenreDelimiter string `koanf:"genre_delimiter"` // separator inside the genre column
	GenreMatch     string `koanf:"genre_match"`     // token or substring
	DefaultYearMin int    `koanf:"default_year_min"`
	DefaultYearMax int    `koanf:"default_year_max"`
	TopGenres      int    `koanf:"top_genres"`
	TopMovies      int    `koanf:"top_movies"`
	HistogramBins  int    `koanf:"histogram_bins"`
	CacheSize      int    `koanf:"cache_size"`
}

// SecurityConfig holds browser-facing protections. There is no
// authentication; the dashboard is read-only.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load reads configuration using the layered koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
