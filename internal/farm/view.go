package farm

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
)

// PlotView is a stored plot plus its derived growth status
type PlotView struct {
	domain.Plot
	growth.Status
	CropName    string `json:"cropName,omitempty"`
	UnlockCost  int64  `json:"unlockCost,omitempty"`
	UnlockLevel int    `json:"unlockLevel,omitempty"`
}

// View is the read model of a farm at one instant
type View struct {
	Address     string                    `json:"address"`
	Coins       decimal.Decimal           `json:"coins"`
	Zeta        int64                     `json:"zeta"`
	Tickets     int64                     `json:"tickets"`
	Exp         int64                     `json:"exp"`
	Level       int                       `json:"level"`
	Fertilizer  int64                     `json:"fertilizer"`
	Seeds       map[string]int64          `json:"seeds"`
	Fruits      map[string]int64          `json:"fruits"`
	Letters     map[string]int64          `json:"letters"`
	Pets        map[string]int64          `json:"pets"`
	Plots       []PlotView                `json:"plots"`
	LastCheckIn string                    `json:"lastCheckIn,omitempty"`
	Redeemed    []string                  `json:"redeemed"`
	Robot       *domain.RobotSubscription `json:"robot,omitempty"`
	LastLogin   int64                     `json:"lastLogin"`
	Now         int64                     `json:"now"`
}

// view projects farm at now. farm must be a copy the caller owns.
func (s *service) view(farm *domain.Farm, now int64) *View {
	return NewView(farm, s.engine, s.catalog, now)
}

// NewView projects farm at now using engine for plot status and cat for
// level and unlock prices
func NewView(farm *domain.Farm, engine *growth.Engine, cat Catalog, now int64) *View {
	v := &View{
		Address:     farm.Address,
		Coins:       farm.Coins,
		Zeta:        farm.Zeta,
		Tickets:     farm.Tickets,
		Exp:         farm.Exp,
		Level:       cat.LevelForExp(farm.Exp),
		Fertilizer:  farm.Fertilizer,
		Seeds:       farm.Seeds,
		Fruits:      farm.Fruits,
		Letters:     farm.Letters,
		Pets:        farm.Pets,
		Plots:       make([]PlotView, len(farm.Plots)),
		LastCheckIn: farm.LastCheckIn,
		Redeemed:    farm.Redeemed,
		Robot:       farm.Robot,
		LastLogin:   farm.LastLogin,
		Now:         now,
	}
	for i := range farm.Plots {
		p := &farm.Plots[i]
		pv := PlotView{Plot: *p, Status: engine.Status(p, now)}
		if crop, ok := cat.Crop(p.CropID); ok {
			pv.CropName = crop.Name
		}
		if !p.Unlocked {
			price := cat.PlotUnlock(p.ID)
			pv.UnlockCost = price.Cost
			pv.UnlockLevel = price.Level
		}
		v.Plots[i] = pv
	}
	return v
}

// Plot returns the projected plot with id, if it exists
func (v *View) Plot(id int) (PlotView, bool) {
	if id < 0 || id >= len(v.Plots) {
		return PlotView{}, false
	}
	return v.Plots[id], true
}
