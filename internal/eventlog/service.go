package eventlog

import (
	"context"

	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all farm events
	Subscribe(bus event.Bus) error

	// Activity returns the latest events for one farm
	Activity(ctx context.Context, address string, limit int) ([]Event, error)

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	event.SubscribeAll(bus, event.AllFarmTypes, s.handleEvent)
	return nil
}

// handleEvent persists one event. Typed payloads are flattened to JSON maps.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	var metadata map[string]interface{}
	if evt.Metadata != nil {
		if m, err := event.DecodePayload[map[string]interface{}](evt.Metadata); err == nil {
			metadata = m
		}
	}

	var address *string
	if addr := evt.Address(); addr != "" {
		address = &addr
	} else if addr, ok := payload[MetadataFallbackAddressKey].(string); ok && addr != "" {
		address = &addr
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), address, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldAddress, address)
	return nil
}

// Activity returns the latest events for one farm, newest first
func (s *service) Activity(ctx context.Context, address string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	return s.repo.GetEventsByAddress(ctx, address, limit)
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
