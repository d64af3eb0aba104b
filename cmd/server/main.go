// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package main is the entry point for the Reelstats dashboard server.
//
// Reelstats serves an interactive dashboard over a top-rated movie table
// (the IMDB Top 1000 CSV): summary cards, four charts and a ranked table,
// all recomputed for the selected release-year range and genre.
//
// # Startup
//
//  1. Configuration: defaults, config.yaml, then environment (koanf v2);
//     a .env file in the working directory is loaded first
//  2. Logging: zerolog, level and format from configuration
//  3. Dataset: loaded once with the csv (gota) or duckdb engine; a load
//     failure is fatal
//  4. Supervisor tree: websocket hub and HTTP server under suture v4
//
// # Configuration
//
//	DATASET_PATH=cleaned_imdb_data.csv  # input table
//	DATASET_ENGINE=csv                  # csv | duckdb
//	DATASET_GENRE_MATCH=token           # token | substring
//	DASHBOARD_CACHE_SIZE=0              # > 0 memoizes that many selections
//	HTTP_PORT=8501
//	LOG_LEVEL=info LOG_FORMAT=json
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree: websocket clients get a
// going-away close frame and the HTTP server drains in-flight requests
// within SHUTDOWN_TIMEOUT.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"slices"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Load .env before reading config

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/api"
	"github.com/tomtom215/reelstats/internal/config"
	"github.com/tomtom215/reelstats/internal/dataset"
	"github.com/tomtom215/reelstats/internal/logging"
	"github.com/tomtom215/reelstats/internal/metrics"
	"github.com/tomtom215/reelstats/internal/supervisor"
	"github.com/tomtom215/reelstats/internal/supervisor/services"
	ws "github.com/tomtom215/reelstats/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("dataset", cfg.Dataset.Path).
		Str("engine", cfg.Dataset.Engine).
		Str("genre_match", cfg.Dataset.GenreMatch).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Reelstats")

	if cfg.IsProduction() && slices.Contains(cfg.Security.CORSOrigins, "*") {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS to restrict it")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, err := dataset.NewLoader(cfg.Dataset.Engine, dataset.Options{
		Path:           cfg.Dataset.Path,
		GenreDelimiter: cfg.Dataset.GenreDelimiter,
		GenreMatch:     dataset.GenreMatch(cfg.Dataset.GenreMatch),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid dataset configuration")
	}

	store := dataset.NewStore(loader)
	table, err := store.Load(ctx)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Dataset.Path).Msg("Failed to load dataset")
	}

	opts := analytics.DefaultOptions()
	opts.TopGenres = cfg.Dataset.TopGenres
	opts.TopMovies = cfg.Dataset.TopMovies
	opts.HistogramBins = cfg.Dataset.HistogramBins
	opts.CacheSize = cfg.Dataset.CacheSize
	service := analytics.NewService(table, opts, cfg.Dataset.DefaultYearMin, cfg.Dataset.DefaultYearMax)

	hub := ws.NewHub()
	handler := api.NewHandler(service, store, hub, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security)))

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(
		services.NewServer(cfg.Server, router),
		cfg.Server.ShutdownTimeout,
	))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	logging.Info().Msg("Reelstats stopped")
}
