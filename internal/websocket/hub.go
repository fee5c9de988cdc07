package websocket

import (
	"encoding/json"
	"sync"

	"github.com/brrmrz19/secret-page-app/pkg/logger"
)

// Hub maintains the set of connected clients and delivers notifications to
// them. It holds no storage state: callers decide who to notify.
type Hub struct {
	// Registered clients mapped by user ID
	clients map[string]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// One connection per user; a new one replaces the old
	if existing, ok := h.clients[client.UserID]; ok {
		close(existing.Send)
	}
	h.clients[client.UserID] = client

	logger.Debug("notification client connected", "userId", client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[client.UserID]; ok && current == client {
		delete(h.clients, client.UserID)
		close(client.Send)
		logger.Debug("notification client disconnected", "userId", client.UserID)
	}
}

// NotifyUser delivers a notification to a single user if connected. Delivery
// is best effort; a slow or absent client is skipped.
func (h *Hub) NotifyUser(userID string, n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		logger.Error("failed to marshal notification", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if client, ok := h.clients[userID]; ok {
		select {
		case client.Send <- data:
		default:
			logger.Warn("notification dropped, client send buffer full", "userId", userID)
		}
	}
}

// IsConnected reports whether a user currently has a notification channel
func (h *Hub) IsConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.clients[userID]
	return ok
}

// ConnectedCount returns the number of currently connected clients
func (h *Hub) ConnectedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
