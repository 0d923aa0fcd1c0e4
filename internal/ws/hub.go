// Package ws pushes note change events to open map pages so they can fetch
// the collections again.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type EventType string

const (
	NoteCreated EventType = "note_created"
	NoteUpdated EventType = "note_updated"
	NoteDeleted EventType = "note_deleted"
)

type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
}

const (
	writeWait  = 10 * time.Second
	bufferSize = 256
)

// Hub fans events out to every connected client. Clients only listen;
// anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader
	events   chan Event

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewHub accepts connections from allowedOrigins. "*" allows any origin.
func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" ||
					slices.Contains(allowedOrigins, "*") ||
					slices.Contains(allowedOrigins, origin)
			},
		},
		events:  make(chan Event, bufferSize),
		clients: make(map[*websocket.Conn]bool),
	}
}

// Run delivers published events until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case e := <-h.events:
			h.send(e)
		}
	}
}

// Publish queues e without blocking. When the queue is full the event is
// dropped.
func (h *Hub) Publish(e Event) {
	select {
	case h.events <- e:
	default:
		slog.Default().Warn("dropping note event", "type", e.Type, "id", e.ID)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Default().Debug("websocket upgrade failed", "error", err)
		return
	}
	h.add(conn)
	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		_ = conn.Close()
	}
}

func (h *Hub) send(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(e); err != nil {
			slog.Default().Debug("websocket write failed", "error", err)
			delete(h.clients, conn)
			_ = conn.Close()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(writeWait))
		_ = conn.Close()
		delete(h.clients, conn)
	}
}
