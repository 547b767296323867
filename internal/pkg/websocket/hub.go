package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub maintains the set of live application feed viewers, grouped by the
// event they are watching, and fans newly inserted applications out to them.
type Hub struct {
	// Registered viewers organized by event ID
	viewers map[uuid.UUID]map[*Client]bool

	// Channel for outbound feed messages
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to the viewers map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Message is one frame on the live application feed.
type Message struct {
	// Type of message; currently only "application.created"
	Type string `json:"type"`

	// Event this message belongs to
	EventID uuid.UUID `json:"eventId"`

	// The inserted application record, in full, so viewers can prepend it
	// without re-querying
	Payload interface{} `json:"payload"`

	// Timestamp when the message was broadcast
	Timestamp time.Time `json:"timestamp"`
}

// MessageTypeApplicationCreated identifies an application insert notification.
const MessageTypeApplicationCreated = "application.created"

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		viewers:    make(map[uuid.UUID]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub loop, handling registrations and broadcasts. It is meant
// to run in its own goroutine for the lifetime of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient adds a viewer to its event's bucket
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.eventID
	if _, ok := h.viewers[eventID]; !ok {
		h.viewers[eventID] = make(map[*Client]bool)
	}
	h.viewers[eventID][client] = true

	h.logger.Info().
		Str("eventID", eventID.String()).
		Str("addr", client.remoteAddr).
		Msg("Feed viewer registered")
}

// unregisterClient removes a viewer and drops the event bucket when it was
// the last one, so an event with no open viewers holds no state.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.eventID
	if viewers, ok := h.viewers[eventID]; ok {
		if _, ok := viewers[client]; ok {
			delete(viewers, client)
			close(client.send)

			if len(viewers) == 0 {
				delete(h.viewers, eventID)
			}

			h.logger.Info().
				Str("eventID", eventID.String()).
				Str("addr", client.remoteAddr).
				Msg("Feed viewer unregistered")
		}
	}
}

// broadcastMessage delivers a message to every viewer of its event. Viewers
// of other events never see it. Delivery is ordered by arrival at the hub,
// not by record creation time.
func (h *Hub) broadcastMessage(message *Message) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.viewers[message.EventID]))
	for client := range h.viewers[message.EventID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		h.logger.Debug().
			Str("eventID", message.EventID.String()).
			Msg("No viewers for event, dropping broadcast")
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("eventID", message.EventID.String()).
			Msg("Failed to marshal feed message")
		return
	}

	var slow []*Client
	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Send buffer full; the viewer is slow or already gone.
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("eventID", message.EventID.String()).
		Int("viewerCount", len(targets)).
		Msg("Feed message broadcast")
}

// BroadcastApplication notifies every open viewer of an event about a newly
// inserted application record.
func (h *Hub) BroadcastApplication(eventID uuid.UUID, application interface{}) {
	h.broadcast <- &Message{
		Type:      MessageTypeApplicationCreated,
		EventID:   eventID,
		Payload:   application,
		Timestamp: time.Now(),
	}
}

// ViewerCount returns the number of open viewers for an event
func (h *Hub) ViewerCount(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.viewers[eventID])
}
