// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

/*
Package websocket provides the interactive control channel of the dashboard.

A browser that keeps a connection open can change the year range or genre
and receive the recomputed report without a page reload. The exchange is
strictly request/reply; nothing is pushed unprompted.

Protocol (JSON text frames):

	client → {"type":"select","data":{"year_min":1990,"year_max":2020,"genre":"Drama"}}
	server ← {"type":"report","data":{...analytics.Report...}}

	client → {"type":"ping"}
	server ← {"type":"pong"}

	server ← {"type":"error","data":{"code":"VALIDATION_ERROR","message":"..."}}

Key Components:

  - Hub: registry of open connections, run under the supervisor so that
    shutdown closes every client
  - Client: one connection with a read goroutine and a write goroutine;
    only the write goroutine touches the socket for writes
  - Handler: computes the reply to a select request

Usage:

	hub := websocket.NewHub()
	tree.AddAPIService(hub)

	r.Get("/api/v1/ws", func(w http.ResponseWriter, r *http.Request) {
	    websocket.ServeWS(hub, upgrader, handler, w, r)
	})
*/
package websocket
