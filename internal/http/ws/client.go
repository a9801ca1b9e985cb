package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
	"github.com/preston-bernstein/matchintel-service/internal/refresh"
)

// client represents a single WebSocket connection.
type client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool

	watchMu sync.Mutex
	watcher *refresh.DetailWatcher
}

// RenderDetail pushes a match view to this client only.
func (c *client) RenderDetail(ctx context.Context, view presenter.DetailView) {
	_ = ctx
	c.sendJSON(TypeDetail, view)
}

// enqueue queues msg without blocking. It reports false when the client is closed or its buffer is full.
func (c *client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) sendJSON(kind string, payload any) {
	msg, err := encode(kind, payload)
	if err != nil {
		logging.Error(c.hub.logger, "ws: failed to encode message", err, slog.String("type", kind))
		return
	}
	c.enqueue(msg)
}

// close stops the client's watcher and closes its send channel. Safe to call more than once.
func (c *client) close() {
	c.unwatch()
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *client) sendInitialDashboard() {
	source := c.hub.dashboardSource()
	if source == nil {
		return
	}
	c.sendJSON(TypeDashboard, source.View())
}

// watch replaces any running watcher with one for id.
func (c *client) watch(id string) {
	c.unwatch()
	if c.ctx.Err() != nil {
		return
	}
	w := refresh.NewDetailWatcher(c.hub.details, c, id, c.hub.logger, c.hub.detail)

	c.watchMu.Lock()
	c.watcher = w
	c.watchMu.Unlock()

	logging.Info(c.hub.logger, "ws: watching match",
		slog.String(logging.FieldClientID, c.id),
		slog.String(logging.FieldMatchID, w.ID()),
	)
	go w.Start(c.ctx)
}

func (c *client) unwatch() {
	c.watchMu.Lock()
	w := c.watcher
	c.watcher = nil
	c.watchMu.Unlock()
	if w != nil {
		w.Stop()
	}
}

func (c *client) handleMessage(raw []byte) {
	var msg clientMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.sendJSON(TypeError, map[string]string{"message": "invalid message"})
		return
	}
	switch msg.Action {
	case ActionWatch:
		if c.hub.details == nil {
			c.sendJSON(TypeError, map[string]string{"message": "match details unavailable"})
			return
		}
		c.watch(msg.ID)
	case ActionUnwatch:
		c.unwatch()
	default:
		c.sendJSON(TypeError, map[string]string{"message": "unknown action"})
	}
}

// readPump reads client actions until the connection fails, then unregisters the client.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.stopped:
			c.close()
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn(c.hub.logger, "ws: unexpected close error",
					slog.String(logging.FieldClientID, c.id),
					"error", err,
				)
			}
			return
		}
		c.handleMessage(message)
	}
}

// writePump pumps queued messages to the connection and sends periodic pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
