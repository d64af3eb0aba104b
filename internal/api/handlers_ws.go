// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelstats/internal/websocket"
)

// WebSocket upgrades to the select/report control channel.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "WebSocket not available", nil)
		return
	}
	websocket.ServeWS(h.hub, h.upgrader, h, w, r)
}

// HandleSelect answers one select frame with the report for its selection.
// Absent fields take the same defaults as the query string.
func (h *Handler) HandleSelect(ctx context.Context, data json.RawMessage) (interface{}, *websocket.ErrorData) {
	var in selectionInput
	if len(data) > 0 {
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, &websocket.ErrorData{Code: websocket.ErrCodeBadMessage, Message: "select data must be an object"}
		}
	}

	sel, verr := h.resolveSelection(in)
	if verr != nil {
		apiErr := verr.ToAPIError()
		return nil, &websocket.ErrorData{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details}
	}

	report, err := h.service.Compute(ctx, sel, "ws")
	if err != nil {
		return nil, &websocket.ErrorData{Code: websocket.ErrCodeInternal, Message: "failed to compute " + describeSelection(sel)}
	}
	return report, nil
}
