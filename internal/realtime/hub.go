package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/munasbate/backend/internal/models"
)

// client pairs a connection with its write lock. gorilla/websocket permits
// one concurrent writer per connection, and locking per client keeps a slow
// consumer from stalling deliveries to everyone else.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// Hub tracks the open websocket connection per user and pushes newly
// inserted messages to connected conversation views. One connection per
// user: a reconnect supersedes and closes the previous one. The hub lock
// guards the registry only; writes happen under each client's own lock.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*client
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*client)}
}

// Add registers a connection for the user, closing any previous one.
func (h *Hub) Add(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.conns[userID]; ok {
		_ = old.conn.Close()
	}
	h.conns[userID] = &client{conn: conn}
}

// Remove drops and closes the user's connection if conn is still the
// registered one. A stale connection from before a reconnect is ignored.
func (h *Hub) Remove(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.conns[userID]; ok && current.conn == conn {
		_ = current.conn.Close()
		delete(h.conns, userID)
	}
}

// IsOnline reports whether the user has an open connection.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.conns[userID]
	return ok
}

// OnlineIDs returns the connected user ids.
func (h *Hub) OnlineIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.conns))
	for id := range h.conns {
		ids = append(ids, id)
	}
	return ids
}

// messageEvent is the frame pushed for a new message. The id lets a
// reconnecting client de-duplicate against optimistically inserted rows.
type messageEvent struct {
	Event   string          `json:"event"`
	Message *models.Message `json:"message"`
}

// PushMessage delivers a new message to both participants that are online.
// Delivery is best-effort: a failed write closes the connection and the
// client re-pulls the conversation on reconnect.
func (h *Hub) PushMessage(message *models.Message) {
	payload, err := json.Marshal(messageEvent{Event: "message", Message: message})
	if err != nil {
		log.Printf("Failed to encode message event: %v", err)
		return
	}
	for _, userID := range []string{message.SenderUserID, message.ReceiverUserID} {
		h.push(userID, payload)
	}
}

func (h *Hub) push(userID string, payload []byte) {
	h.mu.RLock()
	cl, ok := h.conns[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	cl.writeMu.Lock()
	err := cl.conn.WriteMessage(websocket.TextMessage, payload)
	cl.writeMu.Unlock()
	if err != nil {
		log.Printf("Dropping websocket for %s after write error: %v", userID, err)
		h.Remove(userID, cl.conn)
	}
}
