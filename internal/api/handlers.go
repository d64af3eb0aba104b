// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"time"

	gorillaws "github.com/gorilla/websocket"

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/config"
	"github.com/tomtom215/reelstats/internal/websocket"
)

// ReadinessChecker reports whether the dataset is available.
type ReadinessChecker interface {
	Ready() bool
}

// Handler serves every route of the dashboard.
type Handler struct {
	service  *analytics.Service
	ready    ReadinessChecker
	hub      *websocket.Hub
	upgrader *gorillaws.Upgrader
	config   *config.Config

	startTime time.Time
	version   string

	// genres is the accepted genre vocabulary, "All" first.
	genres []string
}

// NewHandler creates a Handler. hub may be nil, in which case the
// websocket route answers 503.
func NewHandler(service *analytics.Service, ready ReadinessChecker, hub *websocket.Hub, cfg *config.Config, version string) *Handler {
	var origins []string
	if cfg != nil {
		origins = cfg.Security.CORSOrigins
	}
	return &Handler{
		service:   service,
		ready:     ready,
		hub:       hub,
		upgrader:  websocket.NewUpgrader(origins),
		config:    cfg,
		startTime: time.Now(),
		version:   version,
		genres:    service.Domain().Genres,
	}
}
