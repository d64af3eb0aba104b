// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

/*
Package api is the HTTP surface of the dashboard: a chi router serving the
HTML page, one SVG per chart, a JSON API and the websocket control channel.

Routes:

	GET /                          HTML dashboard (year_min, year_max, genre)
	GET /charts/{chart}.svg        runtime | scatter | genres | trend
	GET /api/v1/dashboard          full report in the response envelope
	GET /api/v1/movies             top movies of the selection (limit 1-100)
	GET /api/v1/filters            year bounds, default selection, genre list
	GET /api/v1/ws                 websocket select/report channel
	GET /api/v1/health/live        liveness
	GET /api/v1/health/ready       readiness (dataset loaded)
	GET /metrics                   Prometheus exposition

Every request runs the whole chain against the loaded table: parse and
validate the selection, filter, aggregate, render. Missing year parameters
fall back to the configured default range clamped to the data; a missing
genre means "All".

JSON responses share one envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "request_id": "..."}
	}

Errors carry "status":"error" and an "error" object with code, message and
optional details. Validation failures use VALIDATION_ERROR with HTTP 400.
*/
package api
