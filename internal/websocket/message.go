// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package websocket

import (
	"context"

	"github.com/goccy/go-json"
)

// Message types.
const (
	MessageTypeSelect = "select"
	MessageTypeReport = "report"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
	MessageTypeError  = "error"
)

// Error codes sent in error frames.
const (
	ErrCodeBadMessage  = "BAD_MESSAGE"
	ErrCodeUnknownType = "UNKNOWN_TYPE"
	ErrCodeInternal    = "INTERNAL_ERROR"
)

// Message is an outbound frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Request is an inbound frame. Data is decoded by the Handler.
type Request struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ErrorData is the payload of an error frame.
type ErrorData struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Handler answers select requests. A non-nil ErrorData is sent back as an
// error frame and the connection stays open.
type Handler interface {
	HandleSelect(ctx context.Context, data json.RawMessage) (interface{}, *ErrorData)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (interface{}, *ErrorData)

// HandleSelect calls f.
func (f HandlerFunc) HandleSelect(ctx context.Context, data json.RawMessage) (interface{}, *ErrorData) {
	return f(ctx, data)
}

func errorMessage(code, message string) Message {
	return Message{Type: MessageTypeError, Data: &ErrorData{Code: code, Message: message}}
}
