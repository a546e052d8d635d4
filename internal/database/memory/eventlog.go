package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
)

// EventLogStore keeps logged events in a slice
type EventLogStore struct {
	mu     sync.RWMutex
	events []eventlog.Event
	nextID int64
	now    func() time.Time
}

// NewEventLogStore creates an empty event log. now defaults to time.Now.
func NewEventLogStore(now func() time.Time) *EventLogStore {
	if now == nil {
		now = time.Now
	}
	return &EventLogStore{now: now, nextID: 1}
}

var _ eventlog.Repository = (*EventLogStore)(nil)

// LogEvent appends an event
func (s *EventLogStore) LogEvent(_ context.Context, eventType string, address *string, payload, metadata map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	evt := eventlog.Event{
		ID:        s.nextID,
		EventType: eventType,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: s.now(),
	}
	if address != nil {
		a := *address
		evt.Address = &a
	}
	s.nextID++
	s.events = append(s.events, evt)
	return nil
}

// GetEvents returns matching events, newest first
func (s *EventLogStore) GetEvents(_ context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []eventlog.Event{}
	for i := len(s.events) - 1; i >= 0; i-- {
		evt := s.events[i]
		if filter.Address != nil && (evt.Address == nil || *evt.Address != *filter.Address) {
			continue
		}
		if filter.EventType != nil && evt.EventType != *filter.EventType {
			continue
		}
		if filter.Since != nil && evt.CreatedAt.Before(*filter.Since) {
			continue
		}
		if filter.Until != nil && evt.CreatedAt.After(*filter.Until) {
			continue
		}
		out = append(out, evt)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// GetEventsByAddress returns the newest events of one farm
func (s *EventLogStore) GetEventsByAddress(ctx context.Context, address string, limit int) ([]eventlog.Event, error) {
	return s.GetEvents(ctx, eventlog.EventFilter{Address: &address, Limit: limit})
}

// CleanupOldEvents drops events older than retentionDays
func (s *EventLogStore) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	kept := s.events[:0]
	var deleted int64
	for _, evt := range s.events {
		if evt.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, evt)
	}
	s.events = kept
	return deleted, nil
}
