// Package eventtest records published events for assertions in service tests.
package eventtest

import (
	"context"
	"sync"

	"github.com/osse101/ZetaFarm_Go/internal/event"
)

// Recorder is an event.Publisher that keeps every event it is given
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PublishWithRetry records evt
func (r *Recorder) PublishWithRetry(_ context.Context, evt event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

// Events returns a copy of everything recorded so far
func (r *Recorder) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// Types lists recorded event types in publish order
func (r *Recorder) Types() []event.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// OfType returns the recorded events of type t
func (r *Recorder) OfType(t event.Type) []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
