// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/reelstats/internal/cache"
)

// HealthStatus is the readiness payload.
type HealthStatus struct {
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	DatasetLoaded bool         `json:"dataset_loaded"`
	Rows          int          `json:"rows"`
	ReportCache   *cache.Stats `json:"report_cache,omitempty"`
	WSClients     int          `json:"ws_clients"`
	Uptime        float64      `json:"uptime_seconds"`
}

// HealthLive answers as long as the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, start, map[string]string{"status": "alive"})
}

// HealthReady answers 200 once the dataset is loaded and 503 before.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	loaded := h.ready == nil || h.ready.Ready()
	status := HealthStatus{
		Status:        "ready",
		Version:       h.version,
		DatasetLoaded: loaded,
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	if h.service != nil {
		status.Rows = h.service.Table().Len()
		if stats, ok := h.service.CacheStats(); ok {
			status.ReportCache = &stats
		}
	}
	if h.hub != nil {
		status.WSClients = h.hub.ClientCount()
	}

	if !loaded {
		status.Status = "not_ready"
		respondJSON(w, http.StatusServiceUnavailable, &APIResponse{
			Status:   StatusError,
			Data:     status,
			Metadata: metadata(r, start),
			Error:    &APIError{Code: ErrCodeServiceUnavailable, Message: "Dataset not loaded"},
		})
		return
	}
	respondSuccess(w, r, start, status)
}
