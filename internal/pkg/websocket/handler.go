package websocket

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EventChecker confirms an event exists before a feed subscription is opened.
type EventChecker interface {
	EventExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Handler upgrades HTTP requests into live application feed subscriptions.
type Handler struct {
	hub    *Hub
	events EventChecker
	logger zerolog.Logger
}

// NewHandler creates a new feed Handler
func NewHandler(hub *Hub, events EventChecker, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		events: events,
		logger: logger,
	}
}

// HandleConnection godoc
// @Summary Subscribe to an event's live application feed
// @Description Upgrades the HTTP connection to a WebSocket delivering newly inserted applications for the event as they arrive
// @Tags applications, websocket
// @Produce json
// @Param id path string true "Event ID"
// @Success 101 {string} string "Switching Protocols to WebSocket"
// @Failure 404 {object} gin.H "Event not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /events/{id}/applications/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed ID names no event; same outcome as an unknown one.
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
		return
	}

	// The subscription is opened only after the event itself has been
	// confirmed to exist.
	exists, err := h.events.EventExists(c, eventID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("eventID", eventID.String()).
			Msg("Failed to check event before feed subscription")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to check event",
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("eventID", eventID.String()).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:        h.hub,
		conn:       conn,
		send:       make(chan []byte, 256),
		eventID:    eventID,
		remoteAddr: conn.RemoteAddr().String(),
		logger:     h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("eventID", eventID.String()).
		Str("remoteAddr", client.remoteAddr).
		Msg("Live application feed subscription established")
}
