// Reelstats - Top-Rated Movie Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelstats

package websocket

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/tomtom215/reelstats/internal/logging"
	"github.com/tomtom215/reelstats/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 16
)

var clientIDCounter atomic.Uint64

// Client is one websocket connection.
type Client struct {
	id      uint64
	hub     *Hub
	conn    *websocket.Conn
	handler Handler
	send    chan Message
	quit    chan struct{}
	once    sync.Once
}

// NewClient wraps conn. Start must be called to begin serving it.
func NewClient(hub *Hub, conn *websocket.Conn, handler Handler) *Client {
	return &Client{
		id:      clientIDCounter.Add(1),
		hub:     hub,
		conn:    conn,
		handler: handler,
		send:    make(chan Message, sendBuffer),
		quit:    make(chan struct{}),
	}
}

// ID returns the client's process-unique id.
func (c *Client) ID() uint64 {
	return c.id
}

// Start runs the read and write goroutines. ctx carries request-scoped
// logging fields; it is cancelled when the connection ends.
func (c *Client) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	go c.writePump()
	go func() {
		defer cancel()
		c.readPump(ctx)
	}()
}

func (c *Client) close() {
	c.once.Do(func() { close(c.quit) })
}

// enqueue hands m to the write goroutine, dropping it if the client is
// gone or too slow.
func (c *Client) enqueue(m Message) {
	select {
	case <-c.quit:
		return
	default:
	}
	select {
	case c.send <- m:
	case <-c.quit:
	default:
		metrics.RecordWSError("send_buffer_full")
		logging.Warn().Uint64("client_id", c.id).Str("type", m.Type).Msg("websocket send buffer full, dropping message")
	}
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				metrics.RecordWSError("read")
				logging.Ctx(ctx).Warn().Err(err).Msg("unexpected websocket close")
			}
			return
		}
		metrics.WSMessagesReceived.Inc()

		var req Request
		if err := json.Unmarshal(raw, &req); err != nil {
			metrics.RecordWSError("decode")
			c.enqueue(errorMessage(ErrCodeBadMessage, "message is not valid JSON"))
			continue
		}
		c.dispatch(ctx, req)
	}
}

func (c *Client) dispatch(ctx context.Context, req Request) {
	switch req.Type {
	case MessageTypePing:
		c.enqueue(Message{Type: MessageTypePong})
	case MessageTypeSelect:
		report, errData := c.handler.HandleSelect(ctx, req.Data)
		if errData != nil {
			c.enqueue(Message{Type: MessageTypeError, Data: errData})
			return
		}
		c.enqueue(Message{Type: MessageTypeReport, Data: report})
	default:
		c.enqueue(errorMessage(ErrCodeUnknownType, "unknown message type "+req.Type))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case m := <-c.send:
			if err := c.write(m); err != nil {
				metrics.RecordWSError("write")
				logging.Debug().Err(err).Uint64("client_id", c.id).Msg("websocket write failed")
				return
			}
			metrics.WSMessagesSent.Inc()

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.quit:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return
		}
	}
}

func (c *Client) write(m Message) error {
	data, err := json.Marshal(m)
	if err != nil {
		logging.Error().Err(err).Str("type", m.Type).Msg("failed to encode websocket message")
		data, _ = json.Marshal(errorMessage(ErrCodeInternal, "failed to encode reply"))
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
