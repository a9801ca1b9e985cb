// Package ws pushes dashboard and match views to browser clients over WebSocket.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/preston-bernstein/matchintel-service/internal/logging"
	"github.com/preston-bernstein/matchintel-service/internal/metrics"
	"github.com/preston-bernstein/matchintel-service/internal/presenter"
	"github.com/preston-bernstein/matchintel-service/internal/refresh"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 4096

	// sendBufferSize is the channel buffer for outgoing messages per client.
	sendBufferSize = 256
)

// Outgoing message types.
const (
	TypeDashboard = "dashboard"
	TypeDetail    = "detail"
	TypeError     = "error"
)

// Incoming client actions.
const (
	ActionWatch   = "watch"
	ActionUnwatch = "unwatch"
)

// DashboardSource renders the dashboard for a newly connected client.
type DashboardSource interface {
	View() presenter.DashboardView
}

// Envelope is the JSON frame sent to clients.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// clientMsg is the JSON message a client sends to start or stop watching a match.
type clientMsg struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

// Config tunes the hub. Zero values fall back to defaults.
type Config struct {
	// AllowedOrigins restricts the Origin header on upgrade. Empty or "*" allows any origin.
	AllowedOrigins []string
	// Detail controls the interval and display location of per-client match watchers.
	Detail refresh.Options
}

// Hub manages connected WebSocket clients, broadcasts every dashboard render and
// runs one detail watcher per client that asked for one.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	stopped    chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex

	sourceMu sync.RWMutex
	source   DashboardSource

	details  refresh.DetailFetcher
	detail   refresh.Options
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// NewHub creates a hub. details serves watch requests; logger and recorder may be nil.
func NewHub(details refresh.DetailFetcher, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Hub {
	h := &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, sendBufferSize),
		register:   make(chan *client),
		unregister: make(chan *client),
		stopped:    make(chan struct{}),
		details:    details,
		detail:     cfg.Detail,
		logger:     logger,
		metrics:    recorder,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(cfg.AllowedOrigins),
	}
	return h
}

// SetSource sets the dashboard sent to clients on connect.
func (h *Hub) SetSource(source DashboardSource) {
	h.sourceMu.Lock()
	defer h.sourceMu.Unlock()
	h.source = source
}

// Run starts the hub's main event loop and returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer h.stopOnce.Do(func() { close(h.stopped) })

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				c.close()
				h.metrics.RecordStreamClients(-1)
			}
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			total := len(h.clients)
			h.mu.Unlock()
			h.metrics.RecordStreamClients(1)
			logging.Info(h.logger, "ws: client connected",
				slog.String(logging.FieldClientID, c.id),
				slog.Int("total_clients", total),
			)

		case c := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[c]
			if ok {
				delete(h.clients, c)
			}
			total := len(h.clients)
			h.mu.Unlock()
			if ok {
				c.close()
				h.metrics.RecordStreamClients(-1)
				logging.Info(h.logger, "ws: client disconnected",
					slog.String(logging.FieldClientID, c.id),
					slog.Int("total_clients", total),
				)
			}

		case msg := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				if !c.enqueue(msg) {
					logging.Warn(h.logger, "ws: dropping message for slow client",
						slog.String(logging.FieldClientID, c.id),
					)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// RenderDashboard broadcasts the view to every connected client.
func (h *Hub) RenderDashboard(ctx context.Context, view presenter.DashboardView) {
	_ = ctx
	msg, err := encode(TypeDashboard, view)
	if err != nil {
		logging.Error(h.logger, "ws: failed to encode dashboard", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.stopped:
	default:
		logging.Warn(h.logger, "ws: broadcast buffer full, dropping dashboard")
	}
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub.
// GET /ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn(h.logger, "ws: upgrade failed", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &client{
		id:     uuid.NewString(),
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		ctx:    ctx,
		cancel: cancel,
	}

	select {
	case h.register <- c:
	case <-h.stopped:
		cancel()
		_ = conn.Close()
		return
	}
	c.sendInitialDashboard()

	go c.writePump()
	go c.readPump()
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dashboardSource() DashboardSource {
	h.sourceMu.RLock()
	defer h.sourceMu.RUnlock()
	return h.source
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		if origin != "" {
			set[strings.ToLower(origin)] = true
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[strings.ToLower(origin)]
	}
}

func encode(kind string, payload any) ([]byte, error) {
	return json.Marshal(Envelope{Type: kind, Payload: payload})
}
