// Package farm runs player actions against a farm and drives the periodic
// growth tick for active farms.
package farm

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// Catalog is the part of the game tables the farm service reads
type Catalog interface {
	Crop(id string) (domain.Crop, bool)
	CropByBackendID(id string) (domain.Crop, bool)
	Pet(id string) (catalog.Pet, bool)
	DropLetters() []string
	LevelForExp(exp int64) int
	PlotUnlock(plot int) catalog.PlotUnlock
}

// Service defines the farm actions and projections
type Service interface {
	Register(ctx context.Context, address string) (*View, bool, error)
	Login(ctx context.Context, address string) (*LoginResult, error)
	GetFarm(ctx context.Context, address string) (*View, error)

	Plant(ctx context.Context, address string, plotID int, cropID string) (*View, error)
	Water(ctx context.Context, address string, plotID int) (*View, error)
	Weed(ctx context.Context, address string, plotID int) (*View, error)
	Fertilize(ctx context.Context, address string, plotID int) (*View, error)
	Harvest(ctx context.Context, address string, plotID int) (*HarvestResult, error)
	Pesticide(ctx context.Context, address string, plotID int) (*View, error)
	Shovel(ctx context.Context, address string, plotID int) (*View, error)
	UnlockPlot(ctx context.Context, address string, plotID int) (*View, error)
	SubscribeRobot(ctx context.Context, address string, req RobotRequest) (*View, error)
}

// LoginResult is the farm after login and what the pets earned meanwhile
type LoginResult struct {
	Farm           *View           `json:"farm"`
	Created        bool            `json:"created"`
	OfflineSeconds int64           `json:"offlineSeconds"`
	Earned         decimal.Decimal `json:"earned"`
}

// HarvestResult is the farm after a harvest and what the harvest produced
type HarvestResult struct {
	Farm   *View  `json:"farm"`
	CropID string `json:"cropId"`
	Yield  int64  `json:"yield"`
	Exp    int64  `json:"exp"`
	Letter string `json:"letter,omitempty"`
}

// RobotRequest signs a player up for the auto-farming robot
type RobotRequest struct {
	Name            string `json:"name" validate:"required,max=64"`
	Email           string `json:"email" validate:"required,email"`
	AcceptMarketing bool   `json:"acceptMarketing"`
}

type service struct {
	store         *store.Store
	catalog       Catalog
	engine        *growth.Engine
	clock         clock.Clock
	rng           utils.Roller
	publisher     event.Publisher
	validate      *validator.Validate
	startingPlots int
}

// NewService creates a new farm service
func NewService(
	st *store.Store,
	cat Catalog,
	engine *growth.Engine,
	clk clock.Clock,
	rng utils.Roller,
	publisher event.Publisher,
	startingPlots int,
) Service {
	if startingPlots <= 0 {
		startingPlots = domain.DefaultStartingPlots
	}
	return &service{
		store:         st,
		catalog:       cat,
		engine:        engine,
		clock:         clk,
		rng:           rng,
		publisher:     publisher,
		validate:      validator.New(),
		startingPlots: startingPlots,
	}
}

// Register creates the default farm for address. Registering twice returns
// the existing farm and false.
func (s *service) Register(ctx context.Context, address string) (*View, bool, error) {
	if address == "" {
		return nil, false, fmt.Errorf("%w: address is required", domain.ErrInvalidInput)
	}
	now := s.clock.Now()
	farm, created, err := s.store.Create(ctx, domain.NewFarm(address, s.startingPlots, now))
	if err != nil {
		return nil, false, fmt.Errorf("failed to register farm: %w", err)
	}

	if created {
		logger.FromContext(ctx).Info(LogMsgFarmRegistered, "address", address)
		s.publish(ctx, event.NewRewardEvent(event.FarmRegistered, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindRegistered,
			Timestamp: now,
		}))
	}
	return s.view(farm, now), created, nil
}

// Login registers unknown players, credits what their pets earned since the
// last login and stamps the login time
func (s *service) Login(ctx context.Context, address string) (*LoginResult, error) {
	_, created, err := s.Register(ctx, address)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var earned decimal.Decimal
	var offline int64
	farm, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		offline = now - f.LastLogin
		if offline < 0 {
			offline = 0
		}
		earned = s.offlineEarnings(f, offline)
		f.AddCoins(earned)
		f.LastLogin = now
		f.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	if earned.IsPositive() {
		logger.FromContext(ctx).Info(LogMsgOfflineEarnings, "address", address, "coins", earned.String(), "offline_seconds", offline)
		s.publish(ctx, event.NewRewardEvent(event.OfflineEarnings, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindOffline,
			Amount:    earned.String(),
			Timestamp: now,
		}))
	}

	return &LoginResult{
		Farm:           s.view(farm, now),
		Created:        created,
		OfflineSeconds: offline,
		Earned:         earned,
	}, nil
}

// offlineEarnings is floor(sum(coinsPerHour) * hours away)
func (s *service) offlineEarnings(f *domain.Farm, offlineSeconds int64) decimal.Decimal {
	if offlineSeconds <= 0 {
		return decimal.Zero
	}
	perHour := decimal.Zero
	for petID, count := range f.Pets {
		pet, ok := s.catalog.Pet(petID)
		if !ok || count <= 0 {
			continue
		}
		perHour = perHour.Add(pet.CoinsPerHour.Mul(decimal.NewFromInt(count)))
	}
	return perHour.Mul(decimal.NewFromInt(offlineSeconds)).Div(decimal.NewFromInt(SecondsPerHour)).Floor()
}

// GetFarm returns the farm projection at the current time
func (s *service) GetFarm(ctx context.Context, address string) (*View, error) {
	farm, err := s.store.Get(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	return s.view(farm, s.clock.Now()), nil
}

// action mutates a farm as of now
type action func(f *domain.Farm, now int64) error

// apply runs one player action under the player's lock and counts the outcome
func (s *service) apply(ctx context.Context, name, address string, fn action) (*domain.Farm, int64, error) {
	now := s.clock.Now()
	farm, err := s.store.Update(ctx, address, func(f *domain.Farm) error {
		if err := fn(f, now); err != nil {
			return err
		}
		f.UpdatedAt = now
		return nil
	})
	metrics.RecordAction(name, err)
	if err != nil {
		log := logger.FromContext(ctx)
		if _, ok := domain.ReasonOf(err); ok || errors.Is(err, domain.ErrFarmNotFound) {
			log.Debug(LogMsgActionRejected, "action", name, "address", address, "reason", err)
		} else {
			log.Error(LogMsgActionFailed, "action", name, "address", address, "error", err)
		}
		return nil, now, err
	}
	return farm, now, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, evt)
	}
}
