package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lorrc/customer-service-backend/internal/config"
	"github.com/lorrc/customer-service-backend/internal/infrastructure/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Client is one WebSocket connection watching one ticket. Frames reach the
// peer only through the send channel, drained by a single writer goroutine.
type Client struct {
	registry *Registry

	// The websocket connection.
	conn *websocket.Conn

	// The ticket this connection is subscribed to.
	ticketID string

	// Buffered channel of outbound frames.
	send chan []byte

	// Expected pong cadence, taken from configuration.
	pongWait   time.Duration
	pingPeriod time.Duration

	// closeOnce ensures the send channel is only closed once.
	closeOnce sync.Once

	logger *slog.Logger
}

// newClient wraps an upgraded connection for a ticket.
func newClient(registry *Registry, conn *websocket.Conn, ticketID string, cfg config.WebSocketConfig, logger *slog.Logger) *Client {
	return &Client{
		registry:   registry,
		conn:       conn,
		ticketID:   ticketID,
		send:       make(chan []byte, cfg.SendBufferSize),
		pongWait:   cfg.PongWait,
		pingPeriod: cfg.PingInterval,
		logger:     logger.With("ticket_id", ticketID),
	}
}

// closeSend safely closes the send channel exactly once.
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// enqueue hands a frame to the writer without blocking. It reports false when
// the buffer is full and the frame was dropped.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

// readPump reads frames from the peer and echoes each one back verbatim.
// Inbound frames are never parsed, interpreted, or persisted. The pump exits
// on the first read error and unsubscribes the client, which in turn shuts
// down the writer. Runs in its own goroutine.
func (c *Client) readPump() {
	defer func() {
		c.registry.Unsubscribe(c.ticketID, c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(c.pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", "error", err)
		return
	}

	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.pongWait)); err != nil {
			c.logger.Error("failed to set read deadline in pong handler", "error", err)
		}
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		// The echo goes through the send channel so the writer stays the
		// only goroutine touching the connection.
		metrics.WebSocketEchoFramesTotal.Inc()
		if !c.enqueue(message) {
			c.logger.Warn("echo dropped, send buffer full")
		}
	}
}

// writePump writes queued frames and periodic pings to the peer. It is the
// only goroutine that writes to the connection. When the registry closes the
// send channel the pump sends a close frame and exits. Runs in its own
// goroutine.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", "error", err)
				return
			}

			if !ok {
				// The registry closed the channel. Send close message.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.logger.Debug("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", "error", err)
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}
