// Package shop sells seeds, fertilizer and pets, buys fruit and exchanges
// coins for zeta and tickets.
package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
)

// Catalog is the part of the game tables the shop prices against
type Catalog interface {
	CropByBackendID(id string) (domain.Crop, bool)
	Pet(id string) (catalog.Pet, bool)
}

// Service defines the shop and bank operations
type Service interface {
	BuySeed(ctx context.Context, address, cropID string, qty int64) (*Receipt, error)
	BuyFertilizer(ctx context.Context, address string, qty int64) (*Receipt, error)
	SellFruit(ctx context.Context, address, cropID string, qty int64) (*Receipt, error)
	Exchange(ctx context.Context, address, currency string, coins decimal.Decimal) (*Receipt, error)
	BuyPet(ctx context.Context, address, petID string) (*Receipt, error)
}

// Balance is the wallet after a transaction
type Balance struct {
	Coins      decimal.Decimal `json:"coins"`
	Zeta       int64           `json:"zeta"`
	Tickets    int64           `json:"tickets"`
	Fertilizer int64           `json:"fertilizer"`
}

// Receipt describes one completed transaction. Coins is what was paid or,
// for sales, received. Held is how many of the item the player now has.
type Receipt struct {
	ItemID   string          `json:"itemId"`
	Quantity int64           `json:"quantity"`
	Coins    decimal.Decimal `json:"coins"`
	Held     int64           `json:"held"`
	Balance  Balance         `json:"balance"`
}

type service struct {
	store     *store.Store
	catalog   Catalog
	clock     clock.Clock
	publisher event.Publisher
}

// NewService creates a new shop service
func NewService(st *store.Store, cat Catalog, clk clock.Clock, publisher event.Publisher) Service {
	return &service{
		store:     st,
		catalog:   cat,
		clock:     clk,
		publisher: publisher,
	}
}

func checkQuantity(qty int64) error {
	if qty < 1 || qty > domain.MaxPurchaseQty {
		return fmt.Errorf("%w: %d (1-%d)", domain.ErrInvalidQuantity, qty, domain.MaxPurchaseQty)
	}
	return nil
}

// BuySeed buys qty seeds of a crop at its seed cost
func (s *service) BuySeed(ctx context.Context, address, cropID string, qty int64) (*Receipt, error) {
	r := &Receipt{Quantity: qty}
	err := s.apply(ctx, domain.ActionBuySeed, address, r, func(f *domain.Farm) error {
		if err := checkQuantity(qty); err != nil {
			return err
		}
		crop, ok := s.catalog.CropByBackendID(cropID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCrop, cropID)
		}
		cost := decimal.NewFromInt(crop.SeedCost * qty)
		if err := f.SpendCoins(cost); err != nil {
			return err
		}
		f.Seeds[crop.ID] += qty
		r.ItemID, r.Coins, r.Held = crop.ID, cost, f.Seeds[crop.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, event.SeedBought, address, r)
	return r, nil
}

// BuyFertilizer buys qty fertilizer
func (s *service) BuyFertilizer(ctx context.Context, address string, qty int64) (*Receipt, error) {
	r := &Receipt{ItemID: ItemFertilizer, Quantity: qty}
	err := s.apply(ctx, domain.ActionBuyFertilizer, address, r, func(f *domain.Farm) error {
		if err := checkQuantity(qty); err != nil {
			return err
		}
		cost := decimal.NewFromInt(domain.FertilizerCost * qty)
		if err := f.SpendCoins(cost); err != nil {
			return err
		}
		f.Fertilizer += qty
		r.Coins, r.Held = cost, f.Fertilizer
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, event.FertilizerBought, address, r)
	return r, nil
}

// SellFruit sells qty fruit of a crop at its sell price
func (s *service) SellFruit(ctx context.Context, address, cropID string, qty int64) (*Receipt, error) {
	r := &Receipt{Quantity: qty}
	err := s.apply(ctx, domain.ActionSellFruit, address, r, func(f *domain.Farm) error {
		if err := checkQuantity(qty); err != nil {
			return err
		}
		crop, ok := s.catalog.CropByBackendID(cropID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCrop, cropID)
		}
		if err := f.TakeFruit(crop.ID, qty); err != nil {
			return err
		}
		earned := decimal.NewFromInt(crop.SellPrice * qty)
		f.AddCoins(earned)
		r.ItemID, r.Coins, r.Held = crop.ID, earned, f.Fruits[crop.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, event.FruitSold, address, r)
	return r, nil
}

// Exchange converts coins into whole units of zeta or tickets. Only
// units*rate coins are spent; the remainder stays in the wallet.
func (s *service) Exchange(ctx context.Context, address, currency string, coins decimal.Decimal) (*Receipt, error) {
	r := &Receipt{ItemID: currency}
	err := s.apply(ctx, domain.ActionExchange, address, r, func(f *domain.Farm) error {
		rate, ok := exchangeRate(currency)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, currency)
		}
		units := coins.Div(decimal.NewFromInt(rate)).Floor()
		if units.LessThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: %s coins buys no %s at %d:1", domain.ErrAmountTooSmall, coins.String(), currency, rate)
		}
		spent := units.Mul(decimal.NewFromInt(rate))
		if err := f.SpendCoins(spent); err != nil {
			return err
		}
		n := units.IntPart()
		switch currency {
		case domain.CurrencyZeta:
			f.Zeta += n
			r.Held = f.Zeta
		case domain.CurrencyTickets:
			f.Tickets += n
			r.Held = f.Tickets
		}
		r.Quantity, r.Coins = n, spent
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, event.CurrencyExchanged, address, r)
	return r, nil
}

func exchangeRate(currency string) (int64, bool) {
	switch currency {
	case domain.CurrencyZeta:
		return domain.ZetaExchangeRate, true
	case domain.CurrencyTickets:
		return domain.TicketExchangeRate, true
	default:
		return 0, false
	}
}

// BuyPet adopts one pet. Each pet type can be owned once.
func (s *service) BuyPet(ctx context.Context, address, petID string) (*Receipt, error) {
	r := &Receipt{ItemID: petID, Quantity: 1}
	err := s.apply(ctx, domain.ActionBuyPet, address, r, func(f *domain.Farm) error {
		pet, ok := s.catalog.Pet(petID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownPet, petID)
		}
		if f.Pets[pet.ID] > 0 {
			return fmt.Errorf("%w: %s", domain.ErrPetOwned, pet.ID)
		}
		if err := f.SpendCoins(pet.Price); err != nil {
			return err
		}
		f.Pets[pet.ID] = 1
		r.Coins, r.Held = pet.Price, 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, event.PetBought, address, r)
	return r, nil
}

// apply runs fn under the player's lock and fills in the receipt's balance
func (s *service) apply(ctx context.Context, action, address string, r *Receipt, fn store.Mutator) error {
	now := s.clock.Now()
	_, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		if err := fn(f); err != nil {
			return err
		}
		f.UpdatedAt = now
		r.Balance = Balance{Coins: f.Coins, Zeta: f.Zeta, Tickets: f.Tickets, Fertilizer: f.Fertilizer}
		return nil
	})
	metrics.RecordAction(action, err)
	if err != nil {
		log := logger.FromContext(ctx)
		if _, ok := domain.ReasonOf(err); ok || errors.Is(err, domain.ErrFarmNotFound) {
			log.Debug(LogMsgPurchaseRejected, "action", action, "address", address, "reason", err)
		} else {
			log.Error(LogMsgPurchaseFailed, "action", action, "address", address, "error", err)
		}
	}
	return err
}

func (s *service) publishPurchase(ctx context.Context, eventType event.Type, address string, r *Receipt) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishWithRetry(ctx, event.NewPurchaseEvent(eventType, domain.PurchasePayloadV1{
		Address:   address,
		ItemID:    r.ItemID,
		Quantity:  r.Quantity,
		Coins:     r.Coins.String(),
		Timestamp: s.clock.Now(),
	}))
}
