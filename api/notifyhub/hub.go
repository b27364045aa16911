package notifyhub

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/normsend/normsend-go/types"
)

// Hub holds WebSocket connections and broadcasts render events to all
// attached front ends. It is the production presentation sink.
type Hub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// New creates a new notify hub.
func New() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

// Publish sends the notification as JSON to all registered connections.
// Implements types.Sink.
func (h *Hub) Publish(n *types.Notification) {
	if n == nil {
		return
	}
	payload, err := sonic.Marshal(n)
	if err != nil {
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
}
