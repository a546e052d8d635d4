package sse

import (
	"context"
	"log/slog"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub   *Hub
	clock clock.Clock
}

// NewSubscriber creates a subscriber stamping events with clk
func NewSubscriber(hub *Hub, clk clock.Clock) *Subscriber {
	return &Subscriber{hub: hub, clock: clk}
}

// Subscribe forwards every farm event published on bus to the hub
func (s *Subscriber) Subscribe(bus event.Bus) {
	event.SubscribeAll(bus, event.AllFarmTypes, s.forward)
	slog.Info(LogMsgSubscribed, "types", len(event.AllFarmTypes))
}

// forward relays one event. Events without a farm address have no audience.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	address := evt.Address()
	if address == "" {
		return nil
	}

	s.hub.Broadcast(Event{
		Type:      string(evt.Type),
		Address:   address,
		Timestamp: s.now(),
		Payload:   evt.Payload,
	})
	return nil
}

func (s *Subscriber) now() int64 {
	if s.clock == nil {
		return time.Now().Unix()
	}
	return s.clock.Now()
}
