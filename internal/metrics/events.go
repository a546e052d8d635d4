package metrics

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all farm events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, event.AllFarmTypes, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.FarmRegistered:
		FarmsRegistered.Inc()

	case event.CropPlanted:
		var p domain.CropPayloadV1
		if p, err = event.DecodePayload[domain.CropPayloadV1](evt.Payload); err == nil {
			CropsPlanted.WithLabelValues(p.CropID).Inc()
		}

	case event.CropHarvested:
		var p domain.HarvestPayloadV1
		if p, err = event.DecodePayload[domain.HarvestPayloadV1](evt.Payload); err == nil {
			CropsHarvested.WithLabelValues(p.CropID).Inc()
			if p.Letter != "" {
				LettersDropped.WithLabelValues(p.Letter).Inc()
			}
		}

	case event.PestsAppeared:
		PestsAppeared.Inc()

	case event.SeedBought, event.FertilizerBought, event.PetBought, event.CurrencyExchanged, event.PlotUnlocked:
		var p domain.PurchasePayloadV1
		if p, err = event.DecodePayload[domain.PurchasePayloadV1](evt.Payload); err == nil {
			AddCoins(CoinsSpent, parseAmount(p.Coins))
		}

	case event.FruitSold:
		var p domain.PurchasePayloadV1
		if p, err = event.DecodePayload[domain.PurchasePayloadV1](evt.Payload); err == nil {
			AddCoins(CoinsEarned, parseAmount(p.Coins))
		}

	case event.CheckedIn, event.OfflineEarnings:
		var p domain.RewardPayloadV1
		if p, err = event.DecodePayload[domain.RewardPayloadV1](evt.Payload); err == nil {
			if evt.Type == event.CheckedIn {
				CheckIns.Inc()
			}
			AddCoins(CoinsEarned, parseAmount(p.Amount))
		}

	case event.GachaDrawn:
		var p domain.RewardPayloadV1
		if p, err = event.DecodePayload[domain.RewardPayloadV1](evt.Payload); err == nil {
			GachaDraws.Add(parseAmount(p.Amount).InexactFloat64())
		}

	case event.RewardRedeemed:
		var p domain.RewardPayloadV1
		if p, err = event.DecodePayload[domain.RewardPayloadV1](evt.Payload); err == nil {
			RewardsRedeemed.WithLabelValues(p.Detail).Inc()
		}
	}

	if err != nil {
		log.Debug(LogMsgEventPayloadUndecodable, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// parseAmount reads a decimal string, treating garbage as zero
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
