package eventlog

import (
	"context"
	"time"
)

// Event represents a logged event
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	Address   *string                `json:"address,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter filters events for queries
type EventFilter struct {
	Address   *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvent stores an event
	LogEvent(ctx context.Context, eventType string, address *string, payload, metadata map[string]interface{}) error

	// GetEvents retrieves events based on filter criteria, newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)

	// GetEventsByAddress retrieves the latest events for one farm
	GetEventsByAddress(ctx context.Context, address string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than the specified number of days
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
