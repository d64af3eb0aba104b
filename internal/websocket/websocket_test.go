// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

type selectData struct {
	Genre string `json:"genre"`
}

// echoHandler replies with the requested genre, or an error for "bad".
var echoHandler = HandlerFunc(func(_ context.Context, data json.RawMessage) (interface{}, *ErrorData) {
	var sel selectData
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, &ErrorData{Code: "VALIDATION_ERROR", Message: "bad data"}
	}
	if sel.Genre == "bad" {
		return nil, &ErrorData{Code: "VALIDATION_ERROR", Message: "unknown genre"}
	}
	return map[string]string{"genre": sel.Genre}, nil
})

// startServer runs a hub and a websocket endpoint; the hub stops at cleanup.
func startServer(t *testing.T) (*Hub, *httptest.Server, context.CancelFunc) {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		_ = hub.Serve(ctx)
		close(stopped)
	}()

	upgrader := NewUpgrader(nil)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWS(hub, upgrader, echoHandler, w, r)
	}))

	t.Cleanup(func() {
		server.Close()
		cancel()
		<-stopped
	})
	return hub, server, cancel
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req string) map[string]json.RawMessage {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(req)); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg map[string]json.RawMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return msg
}

func messageType(t *testing.T, msg map[string]json.RawMessage) string {
	t.Helper()
	var typ string
	if err := json.Unmarshal(msg["type"], &typ); err != nil {
		t.Fatalf("decode type: %v", err)
	}
	return typ
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestClient_PingPong(t *testing.T) {
	_, server, _ := startServer(t)
	conn := dial(t, server)

	msg := roundTrip(t, conn, `{"type":"ping"}`)
	if got := messageType(t, msg); got != MessageTypePong {
		t.Errorf("type = %q, want pong", got)
	}
}

func TestClient_SelectReport(t *testing.T) {
	_, server, _ := startServer(t)
	conn := dial(t, server)

	msg := roundTrip(t, conn, `{"type":"select","data":{"genre":"Drama"}}`)
	if got := messageType(t, msg); got != MessageTypeReport {
		t.Fatalf("type = %q, want report", got)
	}
	var data selectData
	if err := json.Unmarshal(msg["data"], &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Genre != "Drama" {
		t.Errorf("genre = %q, want Drama", data.Genre)
	}
}

func TestClient_Errors(t *testing.T) {
	_, server, _ := startServer(t)
	conn := dial(t, server)

	tests := []struct {
		name     string
		req      string
		wantCode string
	}{
		{"handler error", `{"type":"select","data":{"genre":"bad"}}`, "VALIDATION_ERROR"},
		{"invalid json", `{not json`, ErrCodeBadMessage},
		{"unknown type", `{"type":"subscribe"}`, ErrCodeUnknownType},
	}

	// Sequential: one connection, ordered replies.
	for _, tt := range tests {
		msg := roundTrip(t, conn, tt.req)
		if got := messageType(t, msg); got != MessageTypeError {
			t.Fatalf("%s: type = %q, want error", tt.name, got)
		}
		var data ErrorData
		if err := json.Unmarshal(msg["data"], &data); err != nil {
			t.Fatalf("%s: decode: %v", tt.name, err)
		}
		if data.Code != tt.wantCode {
			t.Errorf("%s: code = %q, want %q", tt.name, data.Code, tt.wantCode)
		}
	}

	// The connection survives errors.
	if got := messageType(t, roundTrip(t, conn, `{"type":"ping"}`)); got != MessageTypePong {
		t.Errorf("after errors type = %q, want pong", got)
	}
}

func TestHub_TracksClients(t *testing.T) {
	hub, server, _ := startServer(t)

	conn := dial(t, server)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client registration")

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	waitFor(t, func() bool { return hub.ClientCount() == 0 }, "client removal")
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, server, cancel := startServer(t)

	conn := dial(t, server)
	waitFor(t, func() bool { return hub.ClientCount() == 1 }, "client registration")

	cancel()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("read after shutdown: %v, want close going away", err)
	}

	// A stopped hub refuses new registrations.
	if hub.Register(&Client{id: 999}) {
		t.Error("Register after shutdown should fail")
	}
}

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{"no origin header", nil, "", "example.com", true},
		{"same host", nil, "http://dash.local:8501", "dash.local:8501", true},
		{"foreign host", nil, "http://evil.test", "dash.local:8501", false},
		{"listed origin", []string{"http://evil.test"}, "http://evil.test", "dash.local:8501", true},
		{"wildcard", []string{"*"}, "http://anything.test", "dash.local:8501", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := originChecker(tt.allowed)(r); got != tt.want {
				t.Errorf("originChecker = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShutdownReason(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := shutdownReason(ctx); got != ShutdownReasonContextCanceled {
		t.Errorf("canceled = %q", got)
	}

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	if got := shutdownReason(ctx); got != ShutdownReasonContextDeadline {
		t.Errorf("deadline = %q", got)
	}
}
