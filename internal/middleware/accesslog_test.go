// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/reelstats/internal/logging"
)

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	handler := RequestID(AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?genre=Drama", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{
		`"level":"warn"`,
		`"status":500`,
		`"bytes":4`,
		`"path":"/api/v1/dashboard"`,
		`"query":"genre=Drama"`,
		`"request_id":"req-42"`,
		`"message":"request completed"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

func TestIsQuietPath(t *testing.T) {
	t.Parallel()

	if !isQuietPath("/metrics") || !isQuietPath("/api/v1/health/ready") {
		t.Error("probe paths should be quiet")
	}
	if isQuietPath("/") {
		t.Error("dashboard path should not be quiet")
	}
}
