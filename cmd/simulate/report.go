package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/bootstrap"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
)

// Report is the simulation outcome written to disk
type Report struct {
	Seed            int64          `json:"seed"`
	Duration        string         `json:"duration"`
	Farms           int            `json:"farms"`
	Ticks           int64          `json:"ticks"`
	PausedPlotTicks int64          `json:"pausedPlotTicks"`
	Hourly          []Snapshot     `json:"hourly"`
	Players         []PlayerReport `json:"players"`
}

// Snapshot aggregates every farm at one instant
type Snapshot struct {
	At         int64           `json:"at"`
	TotalCoins decimal.Decimal `json:"totalCoins"`
	TotalExp   int64           `json:"totalExp"`
	MaxLevel   int             `json:"maxLevel"`
}

// PlayerReport is one player's counters and final farm
type PlayerReport struct {
	Address    string         `json:"address"`
	Actions    map[string]int `json:"actions"`
	Rejections map[string]int `json:"rejections"`
	Final      *farm.View     `json:"final"`
}

func (r *Report) snapshot(ctx context.Context, app *bootstrap.App, players []*player, now int64) {
	s := Snapshot{At: now, TotalCoins: decimal.Zero}
	for _, p := range players {
		view, err := app.Farm.GetFarm(ctx, p.address)
		if err != nil {
			continue
		}
		s.TotalCoins = s.TotalCoins.Add(view.Coins)
		s.TotalExp += view.Exp
		if view.Level > s.MaxLevel {
			s.MaxLevel = view.Level
		}
	}
	r.Hourly = append(r.Hourly, s)
}
