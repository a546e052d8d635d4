package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata keys
const (
	MetadataKeyAddress = "address"
	MetadataKeySource  = "source"
)

// Event sources
const (
	SourcePlayer = "player"
	SourceTick   = "tick"
)

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	m, ok := e.Metadata.(map[string]interface{})
	if !ok {
		return nil
	}
	return m[key]
}

// Address is the farm the event belongs to, or "" when unknown
func (e Event) Address() string {
	addr, _ := e.GetMetadataValue(MetadataKeyAddress).(string)
	return addr
}

// Farm event types
const (
	FarmRegistered    Type = domain.EventTypeFarmRegistered
	CropPlanted       Type = domain.EventTypeCropPlanted
	CropTended        Type = domain.EventTypeCropTended
	CropFertilized    Type = domain.EventTypeCropFertilized
	CropHarvested     Type = domain.EventTypeCropHarvested
	CropShoveled      Type = domain.EventTypeCropShoveled
	PestsAppeared     Type = domain.EventTypePestsAppeared
	PestsCleared      Type = domain.EventTypePestsCleared
	PlotUnlocked      Type = domain.EventTypePlotUnlocked
	SeedBought        Type = domain.EventTypeSeedBought
	FertilizerBought  Type = domain.EventTypeFertilizerBought
	FruitSold         Type = domain.EventTypeFruitSold
	PetBought         Type = domain.EventTypePetBought
	CurrencyExchanged Type = domain.EventTypeCurrencyExchanged
	GachaDrawn        Type = domain.EventTypeGachaDrawn
	CheckedIn         Type = domain.EventTypeCheckedIn
	LetterDropped     Type = domain.EventTypeLetterDropped
	RewardRedeemed    Type = domain.EventTypeRewardRedeemed
	OfflineEarnings   Type = domain.EventTypeOfflineEarnings
	RobotSubscribed   Type = domain.EventTypeRobotSubscribed
)

// AllFarmTypes lists every farm event type, for subscribers that want them all
var AllFarmTypes = []Type{
	FarmRegistered, CropPlanted, CropTended, CropFertilized, CropHarvested,
	CropShoveled, PestsAppeared, PestsCleared, PlotUnlocked, SeedBought,
	FertilizerBought, FruitSold, PetBought, CurrencyExchanged, GachaDrawn,
	CheckedIn, LetterDropped, RewardRedeemed, OfflineEarnings, RobotSubscribed,
}

func farmMetadata(address, source string) map[string]interface{} {
	return map[string]interface{}{
		MetadataKeyAddress: address,
		MetadataKeySource:  source,
	}
}

// NewCropEvent creates a single-plot crop event
func NewCropEvent(eventType Type, source string, payload domain.CropPayloadV1) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: farmMetadata(payload.Address, source),
	}
}

// NewHarvestEvent creates a harvest event
func NewHarvestEvent(payload domain.HarvestPayloadV1) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     CropHarvested,
		Payload:  payload,
		Metadata: farmMetadata(payload.Address, SourcePlayer),
	}
}

// NewPurchaseEvent creates a shop purchase or sale event
func NewPurchaseEvent(eventType Type, payload domain.PurchasePayloadV1) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: farmMetadata(payload.Address, SourcePlayer),
	}
}

// NewRewardEvent creates a reward event (check-in, gacha, redemption, earnings)
func NewRewardEvent(eventType Type, payload domain.RewardPayloadV1) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     eventType,
		Payload:  payload,
		Metadata: farmMetadata(payload.Address, SourcePlayer),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// Publisher delivers an event without failing the caller. *ResilientPublisher
// implements it by retrying in the background.
type Publisher interface {
	PublishWithRetry(ctx context.Context, event Event)
}

// SubscribeAll registers handler for every listed type
func SubscribeAll(bus Bus, types []Type, handler Handler) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
