package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/promptdeck/promptdeck/internal/domain/prompt"
	"github.com/promptdeck/promptdeck/internal/logging"
	"github.com/promptdeck/promptdeck/internal/monitoring"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// connection wraps a client socket with a write lock, since broadcasts and
// the per-connection read loop both write to it.
type connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *connection) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Handler manages WebSocket connections and state broadcasts
type Handler struct {
	store   *prompt.Manager
	metrics *monitoring.Metrics
	logger  *logging.Logger

	mu    sync.Mutex
	conns map[string]*connection

	stop chan struct{}
	done chan struct{}
}

// NewHandler creates a WebSocket handler over the prompt store
func NewHandler(store *prompt.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		store:   store,
		metrics: metrics,
		logger:  logger,
		conns:   make(map[string]*connection),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start launches the broadcast loop.
func (h *Handler) Start() {
	go h.run()
}

// Stop halts the broadcast loop and closes all connections.
func (h *Handler) Stop() {
	close(h.stop)
	<-h.done

	h.mu.Lock()
	for id, c := range h.conns {
		_ = c.conn.Close()
		delete(h.conns, id)
	}
	h.mu.Unlock()
}

func (h *Handler) run() {
	defer close(h.done)

	changes := h.store.Subscribe()
	for {
		select {
		case <-changes:
			h.broadcast()
		case <-h.stop:
			return
		}
	}
}

func (h *Handler) broadcast() {
	view := h.store.View()
	msg := map[string]interface{}{
		"type":  "state",
		"state": view,
	}

	h.mu.Lock()
	conns := make(map[string]*connection, len(h.conns))
	for id, c := range h.conns {
		conns[id] = c
	}
	h.mu.Unlock()

	for id, c := range conns {
		if err := c.send(msg); err != nil {
			h.logger.Debug("Dropping client after write failure",
				zap.String("client_id", id),
				zap.Error(err))
			h.unregister(id)
		}
	}

	if h.metrics != nil {
		h.metrics.IncWSBroadcasts()
		h.metrics.SetSegmentsActive(len(view.Segments))
	}
}

// HandleConnection handles WebSocket upgrade and the per-client read loop
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	client := &connection{conn: conn}
	h.register(id, client)
	defer h.unregister(id)

	// Full state on connect so a client never starts blank.
	_ = client.send(map[string]interface{}{
		"type":      "state",
		"client_id": id,
		"state":     h.store.View(),
	})

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "ping":
			_ = client.send(map[string]interface{}{"type": "pong"})
		case "sync":
			_ = client.send(map[string]interface{}{
				"type":  "state",
				"state": h.store.View(),
			})
		default:
			_ = client.send(map[string]interface{}{
				"type":  "error",
				"error": "unknown message type",
			})
		}
	}
}

func (h *Handler) register(id string, c *connection) {
	h.mu.Lock()
	h.conns[id] = c
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
	h.logger.Debug("Client connected", zap.String("client_id", id))
}

func (h *Handler) unregister(id string) {
	h.mu.Lock()
	c, ok := h.conns[id]
	if ok {
		delete(h.conns, id)
	}
	h.mu.Unlock()

	if !ok {
		return
	}
	_ = c.conn.Close()
	if h.metrics != nil {
		h.metrics.DecWSConnections()
	}
	h.logger.Debug("Client disconnected", zap.String("client_id", id))
}

// ClientCount returns the number of connected clients.
func (h *Handler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
