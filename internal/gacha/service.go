// Package gacha spends tickets on random seed bundles.
package gacha

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// Log messages
const (
	LogMsgDrawRejected = "Gacha draw rejected"
	LogMsgDrawFailed   = "Gacha draw failed"
)

// KindDraw labels gacha reward events
const KindDraw = "gacha"

// Catalog supplies the pool table
type Catalog interface {
	GachaPools() []catalog.GachaPool
}

// Service defines the gacha operations
type Service interface {
	Draw(ctx context.Context, address string, count int) (*DrawResult, error)
}

// Prize is the outcome of one draw
type Prize struct {
	CropID   string `json:"cropId"`
	Quantity int64  `json:"quantity"`
}

// DrawResult lists every prize of a request, in draw order
type DrawResult struct {
	Prizes  []Prize `json:"prizes"`
	Tickets int64   `json:"tickets"`
}

type service struct {
	store     *store.Store
	catalog   Catalog
	clock     clock.Clock
	rng       utils.Roller
	publisher event.Publisher
}

// NewService creates a new gacha service
func NewService(st *store.Store, cat Catalog, clk clock.Clock, rng utils.Roller, publisher event.Publisher) Service {
	return &service{
		store:     st,
		catalog:   cat,
		clock:     clk,
		rng:       rng,
		publisher: publisher,
	}
}

// Draw spends count tickets and credits a seed bundle for each
func (s *service) Draw(ctx context.Context, address string, count int) (*DrawResult, error) {
	now := s.clock.Now()
	result := &DrawResult{}
	_, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		if count < 1 || count > domain.MaxDrawsPerRequest {
			return fmt.Errorf("%w: %d draws (1-%d)", domain.ErrInvalidQuantity, count, domain.MaxDrawsPerRequest)
		}
		cost := int64(count) * domain.GachaTicketCost
		if f.Tickets < cost {
			return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientTickets, f.Tickets, cost)
		}
		f.Tickets -= cost

		pools := s.catalog.GachaPools()
		prizes := make([]Prize, 0, count)
		for i := 0; i < count; i++ {
			prize := s.roll(pools)
			f.Seeds[prize.CropID] += prize.Quantity
			prizes = append(prizes, prize)
		}
		f.UpdatedAt = now
		result.Prizes, result.Tickets = prizes, f.Tickets
		return nil
	})
	metrics.RecordAction(domain.ActionDraw, err)
	if err != nil {
		log := logger.FromContext(ctx)
		if _, ok := domain.ReasonOf(err); ok || errors.Is(err, domain.ErrFarmNotFound) {
			log.Debug(LogMsgDrawRejected, "address", address, "count", count, "reason", err)
		} else {
			log.Error(LogMsgDrawFailed, "address", address, "count", count, "error", err)
		}
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewRewardEvent(event.GachaDrawn, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindDraw,
			Amount:    strconv.Itoa(count),
			Detail:    summarize(result.Prizes),
			Timestamp: now,
		}))
	}
	return result, nil
}

// roll picks the first pool whose cumulative probability exceeds r. Rolls
// past the last pool fall back to the first one.
func (s *service) roll(pools []catalog.GachaPool) Prize {
	r := s.rng.Float64()
	pool := pools[0]
	for _, p := range pools {
		if r < p.Probability {
			pool = p
			break
		}
	}
	seed := pool.Seeds[s.rng.Int63n(int64(len(pool.Seeds)))]
	return Prize{
		CropID:   seed,
		Quantity: utils.RandomBetween(s.rng, pool.MinQty, pool.MaxQty),
	}
}

func summarize(prizes []Prize) string {
	out := ""
	for i, p := range prizes {
		if i > 0 {
			out += ","
		}
		out += p.CropID + "x" + strconv.FormatInt(p.Quantity, 10)
	}
	return out
}
