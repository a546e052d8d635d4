package farm

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// Plant sows one seed of cropID into an empty, unlocked plot
func (s *service) Plant(ctx context.Context, address string, plotID int, cropID string) (*View, error) {
	var crop domain.Crop
	farm, now, err := s.apply(ctx, domain.ActionPlant, address, func(f *domain.Farm, now int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		if !p.Unlocked {
			return fmt.Errorf("%w: plot %d", domain.ErrPlotLocked, plotID)
		}
		if p.IsPlanted() {
			return fmt.Errorf("%w: plot %d has %s", domain.ErrPlotOccupied, plotID, p.CropID)
		}
		var ok bool
		if crop, ok = s.catalog.CropByBackendID(cropID); !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownCrop, cropID)
		}
		if err := f.TakeSeed(crop.ID); err != nil {
			return err
		}
		s.engine.Plant(p, crop, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCropEvent(event.CropPlanted, event.SourcePlayer, domain.CropPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    crop.ID,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// Water completes every watering requirement that has come due
func (s *service) Water(ctx context.Context, address string, plotID int) (*View, error) {
	return s.tend(ctx, domain.ActionWater, address, plotID, s.engine.FulfillWater)
}

// Weed completes every due weeding requirement and pulls cosmetic weeds
func (s *service) Weed(ctx context.Context, address string, plotID int) (*View, error) {
	return s.tend(ctx, domain.ActionWeed, address, plotID, s.engine.FulfillWeed)
}

func (s *service) tend(ctx context.Context, name, address string, plotID int, fulfill func(*domain.Plot, int64) (int, error)) (*View, error) {
	var cropID string
	farm, now, err := s.apply(ctx, name, address, func(f *domain.Farm, now int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		cropID = p.CropID
		_, err = fulfill(p, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCropEvent(event.CropTended, event.SourcePlayer, domain.CropPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    cropID,
		Action:    name,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// Fertilize spends one fertilizer to pull the plot's planting time backwards
func (s *service) Fertilize(ctx context.Context, address string, plotID int) (*View, error) {
	var cropID string
	farm, now, err := s.apply(ctx, domain.ActionFertilize, address, func(f *domain.Farm, now int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		if err := growth.CheckFertilize(p); err != nil {
			return err
		}
		if f.Fertilizer < 1 {
			return fmt.Errorf("%w: have %d", domain.ErrInsufficientFertilizer, f.Fertilizer)
		}
		if err := s.engine.ApplyFertilizer(p, now); err != nil {
			return err
		}
		f.Fertilizer--
		cropID = p.CropID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCropEvent(event.CropFertilized, event.SourcePlayer, domain.CropPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    cropID,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// Harvest collects a ripe, pest-free crop. Half of all harvests also drop a letter.
func (s *service) Harvest(ctx context.Context, address string, plotID int) (*HarvestResult, error) {
	var res growth.HarvestResult
	var letter string
	farm, now, err := s.apply(ctx, domain.ActionHarvest, address, func(f *domain.Farm, now int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		if res, err = s.engine.Harvest(p, now); err != nil {
			return err
		}
		f.Fruits[res.CropID] += res.Yield
		f.Exp += res.Exp
		if letter = s.rollLetter(); letter != "" {
			f.Letters[letter]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewHarvestEvent(domain.HarvestPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    res.CropID,
		Yield:     res.Yield,
		Exp:       res.Exp,
		Letter:    letter,
		Timestamp: now,
	}))
	if letter != "" {
		s.publish(ctx, event.NewRewardEvent(event.LetterDropped, domain.RewardPayloadV1{
			Address:   address,
			Kind:      KindLetter,
			Amount:    "1",
			Detail:    letter,
			Timestamp: now,
		}))
	}

	return &HarvestResult{
		Farm:   s.view(farm, now),
		CropID: res.CropID,
		Yield:  res.Yield,
		Exp:    res.Exp,
		Letter: letter,
	}, nil
}

// rollLetter returns a random droppable letter, or "" when the roll misses
func (s *service) rollLetter() string {
	if !utils.Chance(s.rng, domain.LetterDropProbability) {
		return ""
	}
	letters := s.catalog.DropLetters()
	if len(letters) == 0 {
		return ""
	}
	return letters[s.rng.Int63n(int64(len(letters)))]
}

// Pesticide clears pests from a plot
func (s *service) Pesticide(ctx context.Context, address string, plotID int) (*View, error) {
	var cropID string
	farm, now, err := s.apply(ctx, domain.ActionPesticide, address, func(f *domain.Farm, _ int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		cropID = p.CropID
		return s.engine.ClearPests(p)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCropEvent(event.PestsCleared, event.SourcePlayer, domain.CropPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    cropID,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// Shovel digs up whatever is planted, ripe or not
func (s *service) Shovel(ctx context.Context, address string, plotID int) (*View, error) {
	var cropID string
	farm, now, err := s.apply(ctx, domain.ActionShovel, address, func(f *domain.Farm, _ int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		cropID, err = s.engine.Shovel(p)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCropEvent(event.CropShoveled, event.SourcePlayer, domain.CropPayloadV1{
		Address:   address,
		PlotID:    plotID,
		CropID:    cropID,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// UnlockPlot buys a locked plot once the player's level allows it
func (s *service) UnlockPlot(ctx context.Context, address string, plotID int) (*View, error) {
	var cost decimal.Decimal
	farm, now, err := s.apply(ctx, domain.ActionUnlockPlot, address, func(f *domain.Farm, _ int64) error {
		p, err := f.Plot(plotID)
		if err != nil {
			return err
		}
		if p.Unlocked {
			return fmt.Errorf("%w: plot %d", domain.ErrPlotAlreadyUnlocked, plotID)
		}
		price := s.catalog.PlotUnlock(plotID)
		if level := s.catalog.LevelForExp(f.Exp); level < price.Level {
			return fmt.Errorf("%w: plot %d needs level %d, have %d", domain.ErrLevelTooLow, plotID, price.Level, level)
		}
		cost = decimal.NewFromInt(price.Cost)
		if err := f.SpendCoins(cost); err != nil {
			return err
		}
		p.Unlocked = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewPurchaseEvent(event.PlotUnlocked, domain.PurchasePayloadV1{
		Address:   address,
		ItemID:    fmt.Sprintf("plot_%d", plotID),
		Quantity:  1,
		Coins:     cost.String(),
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}

// SubscribeRobot records the player's robot sign-up, replacing any earlier one
func (s *service) SubscribeRobot(ctx context.Context, address string, req RobotRequest) (*View, error) {
	farm, now, err := s.apply(ctx, domain.ActionRobotSubscribe, address, func(f *domain.Farm, now int64) error {
		if err := s.validate.Struct(req); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		f.Robot = &domain.RobotSubscription{
			Name:            req.Name,
			Email:           req.Email,
			AcceptMarketing: req.AcceptMarketing,
			SubscribedAt:    now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewRewardEvent(event.RobotSubscribed, domain.RewardPayloadV1{
		Address:   address,
		Kind:      KindRobot,
		Detail:    req.Name,
		Timestamp: now,
	}))
	return s.view(farm, now), nil
}
