package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active staff connections and pushes notification payloads to
// them. Clients that miss a push simply catch up by polling the
// notifications endpoint.
type Hub struct {
	mu               sync.RWMutex
	staffIDToClients map[uint]map[Client]struct{}
}

// NewHub constructs an empty hub.
func NewHub() *Hub {
	return &Hub{staffIDToClients: make(map[uint]map[Client]struct{})}
}

// Register adds a client under a staff ID.
func (h *Hub) Register(staffID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.staffIDToClients[staffID]; !ok {
		h.staffIDToClients[staffID] = make(map[Client]struct{})
	}
	h.staffIDToClients[staffID][client] = struct{}{}
}

// Unregister removes a client; if the staff member has no more clients the
// map entry is cleaned up.
func (h *Hub) Unregister(staffID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.staffIDToClients[staffID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.staffIDToClients, staffID)
		}
	}
}

// Push sends a message to all clients of a staff member.
func (h *Hub) Push(staffID uint, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.staffIDToClients[staffID] {
		if ok := c.Send(message); !ok {
			// write failed; the ws handler cleans the client up on its side
		}
	}
}
