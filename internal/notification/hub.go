// internal/notification/hub.go

package notifications

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub tracks connected websocket clients and pushes match events to them.
// One connection per user; a reconnect replaces the old socket.
type Hub struct {
	clients    map[int64]*Client
	clientsMux sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case <-h.done:
			h.cleanup()
			return
		}
	}
}

func (h *Hub) Shutdown() {
	close(h.done)
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	if old, exists := h.clients[client.userID]; exists {
		old.Close()
	}
	h.clients[client.userID] = client

	log.Printf("notifications: user %d connected (conn %s), %d clients online", client.userID, client.connID, len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	// Only drop the map entry if this exact connection still owns it.
	if current, exists := h.clients[client.userID]; exists && current.connID == client.connID {
		delete(h.clients, client.userID)
	}
	client.Close()

	log.Printf("notifications: user %d disconnected (conn %s), %d clients online", client.userID, client.connID, len(h.clients))
}

// SendToUser pushes an event to a user if they are connected. Offline users
// are simply skipped; email covers them.
func (h *Hub) SendToUser(userID int64, event WSEvent) {
	h.clientsMux.RLock()
	client, exists := h.clients[userID]
	h.clientsMux.RUnlock()

	if !exists {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("notifications: failed to marshal event: %v", err)
		return
	}

	select {
	case client.send <- data:
	default:
		// Client is not draining its queue; drop the connection.
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) IsUserOnline(userID int64) bool {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()

	_, exists := h.clients[userID]
	return exists
}

func (h *Hub) ActiveConnections() int {
	h.clientsMux.RLock()
	defer h.clientsMux.RUnlock()
	return len(h.clients)
}

func (h *Hub) cleanup() {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for _, client := range h.clients {
		client.Close()
	}
	h.clients = make(map[int64]*Client)
}
