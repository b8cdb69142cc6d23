package websocket

import (
	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/catalog"
)

// Publisher bridges the catalogue and the hub: it consumes change events from
// a catalogue subscription and hands them to the hub for fan-out.
type Publisher struct {
	hub    *Hub
	events chan catalog.Event
	logger zerolog.Logger
}

// NewPublisher creates a Publisher reading from the given subscription channel
func NewPublisher(hub *Hub, events chan catalog.Event, logger zerolog.Logger) *Publisher {
	return &Publisher{
		hub:    hub,
		events: events,
		logger: logger,
	}
}

// Start begins forwarding events in a background goroutine. Forwarding stops
// when the subscription channel is closed.
func (p *Publisher) Start() {
	go p.pump()
}

func (p *Publisher) pump() {
	for event := range p.events {
		p.hub.BroadcastEvent(event)

		p.logger.Debug().
			Uint64("version", event.Version).
			Msg("Forwarded catalogue event")
	}

	p.logger.Info().Msg("Catalogue subscription closed, publisher stopped")
}
