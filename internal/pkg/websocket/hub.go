package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/catalog"
)

// Hub maintains the set of connected event subscribers and fans catalogue
// change events out to them.
type Hub struct {
	// Connected clients
	clients map[*Client]bool

	// Events queued for delivery
	broadcast chan catalog.Event

	// Register requests from new connections
	register chan *Client

	// Unregister requests from closing connections
	unregister chan *Client

	// Mutex for concurrent access to the clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan catalog.Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true

	h.logger.Info().
		Str("addr", client.conn.RemoteAddr().String()).
		Int("clientCount", len(h.clients)).
		Msg("Events subscriber registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Str("addr", client.conn.RemoteAddr().String()).
			Int("clientCount", len(h.clients)).
			Msg("Events subscriber unregistered")
	}
}

// broadcastEvent sends one event to every connected client. A client whose
// send buffer is full is dropped; the feed must never block on a slow reader.
func (h *Hub) broadcastEvent(event catalog.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Uint64("version", event.Version).
			Msg("Failed to marshal catalogue event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		select {
		case client.send <- data:
			// Event queued successfully
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}

	h.logger.Debug().
		Uint64("version", event.Version).
		Int("clientCount", len(h.clients)).
		Msg("Catalogue event broadcast")
}

// BroadcastEvent queues an event for delivery to every connected client.
func (h *Hub) BroadcastEvent(event catalog.Event) {
	h.broadcast <- event
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
