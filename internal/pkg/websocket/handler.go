package websocket

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/catalog"
)

// Handler upgrades requests on the events endpoint to websocket connections
type Handler struct {
	hub     *Hub
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, cat *catalog.Catalog, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		catalog: cat,
		logger:  logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to catalogue change events
// @Description Upgrades the connection to a WebSocket. The server pushes a JSON event carrying the new catalogue version whenever published content changes; clients re-fetch the listings they care about. The current version is sent on connect.
// @Tags events
// @Produce json
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 400 {string} string "Upgrade failed"
// @Router /events [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written an HTTP error response
		h.logger.Warn().
			Err(err).
			Str("remoteAddr", c.Request.RemoteAddr).
			Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: h.logger,
	}

	// Queue the current version before registering so it is the first frame
	// the client sees; it can then tell whether its cached listings are
	// already stale.
	if greeting, err := json.Marshal(catalog.Event{Version: h.catalog.Snapshot().Version}); err == nil {
		client.send <- greeting
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("Events subscriber connected")
}
