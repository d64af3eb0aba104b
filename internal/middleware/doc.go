// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

/*
Package middleware provides the HTTP middleware the dashboard router
installs around every handler.

All middleware use the func(http.Handler) http.Handler shape, so they
compose with chi's Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

Components:

  - RequestID: honours an upstream X-Request-ID or generates a UUID, and
    seeds the logging context with request and correlation ids
  - AccessLog: one zerolog line per request
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern to keep label cardinality bounded
  - Compression: gzip for clients that accept it, skipped for websocket
    upgrades

The response writer wrappers implement http.Hijacker and http.Flusher when
the underlying writer does, so websocket upgrades pass through the stack.
*/
package middleware
