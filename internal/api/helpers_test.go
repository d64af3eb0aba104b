// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelstats/internal/analytics"
	"github.com/tomtom215/reelstats/internal/dataset"
	"github.com/tomtom215/reelstats/internal/websocket"
)

type stubReady bool

func (s stubReady) Ready() bool { return bool(s) }

func testTable() *dataset.Table {
	return dataset.NewTable([]dataset.Movie{
		{Title: "The Shawshank Redemption", Year: 1994, Rating: 9.3, Gross: 28341469, Runtime: 142, Genre: "Drama", Director: "Frank Darabont"},
		{Title: "Inception", Year: 2010, Rating: 8.8, Gross: 292576195, Runtime: 148, Genre: "Action, Sci-Fi", Director: "Christopher Nolan"},
	}, ",", dataset.MatchToken)
}

func newTestHandler(t *testing.T, ready bool, hub *websocket.Hub) *Handler {
	t.Helper()
	svc := analytics.NewService(testTable(), analytics.DefaultOptions(), 1990, 2020)
	return NewHandler(svc, stubReady(ready), hub, nil, "test")
}

// envelope mirrors APIResponse with Data left undecoded.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	return env
}
