// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

// Package metrics holds the Prometheus collectors for Reelstats and small
// Record helpers so callers never touch label ordering directly.
package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset Metrics
	DatasetRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_loaded",
			Help: "Number of movie rows in the loaded dataset",
		},
	)

	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of the one-time dataset load in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"engine"},
	)

	DatasetLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
		[]string{"engine"},
	)

	// Dashboard Metrics
	DashboardComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_compute_duration_seconds",
			Help:    "Time to filter and aggregate one selection",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"view"}, // "page", "api", "chart", "ws"
	)

	DashboardSelectionRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_selection_rows",
			Help:    "Rows matched by a selection",
			Buckets: []float64{0, 1, 10, 50, 100, 250, 500, 1000},
		},
	)

	DashboardEmptySelections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_empty_selections_total",
			Help: "Total number of selections that matched no movies",
		},
	)

	DashboardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_report_cache_lookups_total",
			Help: "Report cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chart_render_duration_seconds",
			Help:    "Time to render one chart as SVG",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"chart"},
	)

	ChartRenderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chart_render_errors_total",
			Help: "Total number of chart render failures",
		},
		[]string{"chart"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections",
			Help: "Current number of open WebSocket sessions",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ws_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDatasetLoad records the outcome of the dataset load.
func RecordDatasetLoad(engine string, rows int, duration time.Duration, err error) {
	DatasetLoadDuration.WithLabelValues(engine).Observe(duration.Seconds())
	if err != nil {
		DatasetLoadErrors.WithLabelValues(engine).Inc()
		return
	}
	DatasetRowsLoaded.Set(float64(rows))
}

// RecordDashboardCompute records one filter + aggregate pass.
func RecordDashboardCompute(view string, rows int, duration time.Duration) {
	DashboardComputeDuration.WithLabelValues(view).Observe(duration.Seconds())
	DashboardSelectionRows.Observe(float64(rows))
	if rows == 0 {
		DashboardEmptySelections.Inc()
	}
}

// RecordCacheLookup counts a report cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		DashboardCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	DashboardCacheLookups.WithLabelValues("miss").Inc()
}

// RecordChartRender records one chart render.
func RecordChartRender(chart string, duration time.Duration, err error) {
	ChartRenderDuration.WithLabelValues(chart).Observe(duration.Seconds())
	if err != nil {
		ChartRenderErrors.WithLabelValues(chart).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordWSError counts a WebSocket failure by category.
func RecordWSError(errorType string) {
	WSErrors.WithLabelValues(errorType).Inc()
}

// SetAppInfo publishes the build version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
