// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/reelstats/internal/logging"
	"github.com/tomtom215/reelstats/internal/middleware"
	"github.com/tomtom215/reelstats/internal/validation"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a\nb", `a\x0ab`},
		{"tab\there", `tab\x09here`},
		{"Sci-Fi ✓", "Sci-Fi ✓"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRespondSuccess(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/filters", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()

	middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondSuccess(w, r, time.Now(), map[string]int{"n": 1})
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("ETag missing on success")
	}
	env := decodeEnvelope(t, rec)
	if env.Status != StatusSuccess || env.Error != nil {
		t.Errorf("envelope = %+v", env)
	}
	if env.Metadata.RequestID != "req-1" {
		t.Errorf("request_id = %q, want req-1", env.Metadata.RequestID)
	}
	if string(env.Data) != `{"n":1}` {
		t.Errorf("data = %s", env.Data)
	}
}

func TestETag_StableAndDistinct(t *testing.T) {
	t.Parallel()

	a := etag([]byte(`{"a":1}`))
	if a != etag([]byte(`{"a":1}`)) {
		t.Error("etag is not deterministic")
	}
	if a == etag([]byte(`{"a":2}`)) {
		t.Error("different bodies share an etag")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("etag %s is not quoted", a)
	}
}

func TestRespondError_LogsServerErrors(t *testing.T) {
	var buf bytes.Buffer
	old := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(old) })

	req := httptest.NewRequest(http.MethodGet, "/charts/runtime.svg", nil)
	rec := httptest.NewRecorder()
	respondError(rec, req, http.StatusInternalServerError, ErrCodeRender, "Failed to render chart", errors.New("boom\ninjected"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("ETag") != "" {
		t.Error("error responses must not carry an ETag")
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != ErrCodeRender {
		t.Fatalf("error = %+v", env.Error)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Error("internal error leaked to client")
	}

	logged := buf.String()
	if !strings.Contains(logged, `"level":"error"`) || !strings.Contains(logged, `boom\\x0ainjected`) {
		t.Errorf("log = %s", logged)
	}
}

func TestRespondValidationError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	respondValidationError(rec, req, validation.CheckOneOf("genre", "Horror", []string{"All", "Drama"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Status != StatusError || env.Error.Code != ErrCodeValidation {
		t.Fatalf("envelope = %+v", env)
	}
	if env.Error.Details["field"] != "genre" {
		t.Errorf("details = %v", env.Error.Details)
	}
}
