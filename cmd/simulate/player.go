package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/bootstrap"
	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
)

// player is a greedy farmer: it keeps every unlocked plot planted with the
// starter crop, tends requirements as they come due and sells everything
type player struct {
	app        *bootstrap.App
	address    string
	actions    map[string]int
	rejections map[string]int
}

func newPlayer(app *bootstrap.App, address string) *player {
	return &player{
		app:        app,
		address:    address,
		actions:    map[string]int{},
		rejections: map[string]int{},
	}
}

func (p *player) join(ctx context.Context) error {
	_, err := p.app.Farm.Login(ctx, p.address)
	return err
}

// tend runs one visit: check in once a day, then work through the plots
func (p *player) tend(ctx context.Context) {
	view, err := p.app.Farm.GetFarm(ctx, p.address)
	if err != nil {
		p.record("get_farm", err)
		return
	}

	if today := time.Unix(view.Now, 0).UTC().Format(checkin.DayLayout); view.LastCheckIn != today {
		p.record(domain.ActionCheckIn, ignoreResult(p.app.CheckIn.CheckIn(ctx, p.address)))
	}

	for _, plot := range view.Plots {
		if !plot.Unlocked {
			continue
		}
		p.tendPlot(ctx, plot)
	}

	p.sellFruit(ctx)
}

func (p *player) tendPlot(ctx context.Context, plot farm.PlotView) {
	id := plot.ID
	switch plot.Stage {
	case domain.StageEmpty:
		p.plant(ctx, id)
	case domain.StageWither:
		p.record(domain.ActionShovel, ignoreResult(p.app.Farm.Shovel(ctx, p.address, id)))
	case domain.StageRipe:
		if plot.Pests {
			p.record(domain.ActionPesticide, ignoreResult(p.app.Farm.Pesticide(ctx, p.address, id)))
		}
		p.record(domain.ActionHarvest, ignoreResult(p.app.Farm.Harvest(ctx, p.address, id)))
	default:
		if plot.NeedsWater {
			p.record(domain.ActionWater, ignoreResult(p.app.Farm.Water(ctx, p.address, id)))
		}
		if plot.NeedsWeeding {
			p.record(domain.ActionWeed, ignoreResult(p.app.Farm.Weed(ctx, p.address, id)))
		}
	}
}

// plant plants the starter crop, buying a seed first when none is held
func (p *player) plant(ctx context.Context, plotID int) {
	view, err := p.app.Farm.GetFarm(ctx, p.address)
	if err != nil {
		p.record("get_farm", err)
		return
	}
	if view.Seeds[domain.StarterCropID] < 1 {
		crop, ok := p.app.Catalog.Crop(domain.StarterCropID)
		if !ok || view.Coins.LessThan(decimal.NewFromInt(crop.SeedCost)) {
			return
		}
		if err := ignoreResult(p.app.Shop.BuySeed(ctx, p.address, domain.StarterCropID, 1)); err != nil {
			p.record(domain.ActionBuySeed, err)
			return
		}
		p.record(domain.ActionBuySeed, nil)
	}
	p.record(domain.ActionPlant, ignoreResult(p.app.Farm.Plant(ctx, p.address, plotID, domain.StarterCropID)))
}

func (p *player) sellFruit(ctx context.Context) {
	view, err := p.app.Farm.GetFarm(ctx, p.address)
	if err != nil {
		return
	}
	for cropID, qty := range view.Fruits {
		if qty > 0 {
			p.record(domain.ActionSellFruit, ignoreResult(p.app.Shop.SellFruit(ctx, p.address, cropID, qty)))
		}
	}
}

// record counts a success, or a rejection by reason code
func (p *player) record(action string, err error) {
	if err == nil {
		p.actions[action]++
		return
	}
	if code, ok := domain.ReasonOf(err); ok {
		p.rejections[action+":"+string(code)]++
		return
	}
	if errors.Is(err, domain.ErrFarmNotFound) {
		p.rejections[action+":not_found"]++
		return
	}
	p.rejections[action+":error"]++
}

func ignoreResult[T any](_ T, err error) error {
	return err
}
