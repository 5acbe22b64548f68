package notifications

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event represents a payload delivered to notification subscribers.
type Event struct {
	Event          string        `json:"event"`
	Notification   *Notification `json:"notification,omitempty"`
	NotificationID string        `json:"notification_id,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan Event
}

// Hub fans notification events out to the open portal tabs of a session.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub constructs a notification hub instance.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Serve upgrades the HTTP connection to a WebSocket and registers the
// session's subscriber. It blocks until the peer disconnects.
func (h *Hub) Serve(sessionID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	cl := &client{
		conn: conn,
		send: make(chan Event, 16),
	}

	h.addClient(sessionID, cl)
	defer h.removeClient(sessionID, cl)

	go h.writeLoop(cl)
	h.readLoop(cl)
	return nil
}

// Broadcast delivers an event to every subscriber of the supplied session.
func (h *Hub) Broadcast(sessionID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for cl := range h.clients[sessionID] {
		select {
		case cl.send <- event:
		default:
			// Drop when the buffer is full rather than blocking the sender.
		}
	}
}

func (h *Hub) addClient(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*client]struct{})
	}
	h.clients[sessionID][cl] = struct{}{}
}

func (h *Hub) removeClient(sessionID string, cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients := h.clients[sessionID]; clients != nil {
		delete(clients, cl)
		if len(clients) == 0 {
			delete(h.clients, sessionID)
		}
	}
	close(cl.send)
	_ = cl.conn.Close()
}

func (h *Hub) writeLoop(cl *client) {
	for event := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := cl.conn.WriteJSON(event); err != nil {
			break
		}
	}
}

func (h *Hub) readLoop(cl *client) {
	defer cl.conn.Close()

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			break
		}
	}
}
