// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/reelstats/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging, or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDataset() error {
	d := c.Dataset
	if strings.TrimSpace(d.Path) == "" {
		return fmt.Errorf("DATASET_PATH is required")
	}
	if d.Engine != EngineCSV && d.Engine != EngineDuckDB {
		return fmt.Errorf("DATASET_ENGINE must be %q or %q, got %q", EngineCSV, EngineDuckDB, d.Engine)
	}
	if d.GenreDelimiter == "" {
		return fmt.Errorf("DATASET_GENRE_DELIMITER must not be empty")
	}
	if d.GenreMatch != GenreMatchToken && d.GenreMatch != GenreMatchSubstring {
		return fmt.Errorf("DATASET_GENRE_MATCH must be %q or %q, got %q", GenreMatchToken, GenreMatchSubstring, d.GenreMatch)
	}
	if d.DefaultYearMin > d.DefaultYearMax {
		return fmt.Errorf("DATASET_DEFAULT_YEAR_MIN (%d) must not exceed DATASET_DEFAULT_YEAR_MAX (%d)", d.DefaultYearMin, d.DefaultYearMax)
	}
	if d.TopGenres < 1 || d.TopGenres > 100 {
		return fmt.Errorf("DASHBOARD_TOP_GENRES must be between 1 and 100, got %d", d.TopGenres)
	}
	if d.TopMovies < 1 || d.TopMovies > 100 {
		return fmt.Errorf("DASHBOARD_TOP_MOVIES must be between 1 and 100, got %d", d.TopMovies)
	}
	if d.HistogramBins < 1 || d.HistogramBins > 200 {
		return fmt.Errorf("DASHBOARD_HISTOGRAM_BINS must be between 1 and 200, got %d", d.HistogramBins)
	}
	if d.CacheSize < 0 {
		return fmt.Errorf("DASHBOARD_CACHE_SIZE must not be negative, got %d", d.CacheSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
