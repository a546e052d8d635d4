package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RobotSubscription records a player's sign-up for the auto-farming robot
type RobotSubscription struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	AcceptMarketing bool   `json:"acceptMarketing"`
	SubscribedAt    int64  `json:"subscribedAt"`
}

// Farm is the whole persisted state of one player. It is mutated only under
// the player's lock and saved as a unit.
type Farm struct {
	Address    string           `json:"address"`
	Coins      decimal.Decimal  `json:"coins"`
	Zeta       int64            `json:"zeta"`
	Tickets    int64            `json:"tickets"`
	Exp        int64            `json:"exp"`
	Fertilizer int64            `json:"fertilizer"`
	Seeds      map[string]int64 `json:"seeds"`
	Fruits     map[string]int64 `json:"fruits"`
	Letters    map[string]int64 `json:"letters"`
	Pets       map[string]int64 `json:"pets"`
	Plots      []Plot           `json:"plots"`

	// CheckIns maps "YYYY-MM" to the days of that month the player checked in
	CheckIns    map[string][]int   `json:"checkIns"`
	LastCheckIn string             `json:"lastCheckIn,omitempty"`
	Redeemed    []string           `json:"redeemed"`
	Robot       *RobotSubscription `json:"robot,omitempty"`

	LastLogin int64 `json:"lastLogin"`
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// NewFarm builds the default farm for a first-time player
func NewFarm(address string, startingPlots int, now int64) *Farm {
	if startingPlots < 1 {
		startingPlots = 1
	}
	if startingPlots > PlotCount {
		startingPlots = PlotCount
	}
	return &Farm{
		Address:   address,
		Coins:     decimal.Zero,
		Seeds:     map[string]int64{StarterCropID: 1},
		Fruits:    map[string]int64{},
		Letters:   map[string]int64{},
		Pets:      map[string]int64{},
		Plots:     NewPlots(startingPlots),
		CheckIns:  map[string][]int{},
		Redeemed:  []string{},
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Plot returns the plot with the given id
func (f *Farm) Plot(id int) (*Plot, error) {
	if id < 0 || id >= len(f.Plots) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlot, id)
	}
	return &f.Plots[id], nil
}

// SpendCoins deducts amount or fails without touching the balance
func (f *Farm) SpendCoins(amount decimal.Decimal) error {
	if f.Coins.LessThan(amount) {
		return fmt.Errorf("%w: have %s, need %s", ErrInsufficientCoins, f.Coins.String(), amount.String())
	}
	f.Coins = f.Coins.Sub(amount)
	return nil
}

// AddCoins credits amount
func (f *Farm) AddCoins(amount decimal.Decimal) {
	f.Coins = f.Coins.Add(amount)
}

// TakeSeed removes one seed of cropID
func (f *Farm) TakeSeed(cropID string) error {
	if f.Seeds[cropID] < 1 {
		return fmt.Errorf("%w: %s", ErrInsufficientSeeds, cropID)
	}
	f.Seeds[cropID]--
	return nil
}

// TakeFruit removes qty fruit of cropID
func (f *Farm) TakeFruit(cropID string, qty int64) error {
	if f.Fruits[cropID] < qty {
		return fmt.Errorf("%w: have %d %s, need %d", ErrInsufficientFruit, f.Fruits[cropID], cropID, qty)
	}
	f.Fruits[cropID] -= qty
	return nil
}

// HasRedeemed reports whether reward has been claimed
func (f *Farm) HasRedeemed(reward string) bool {
	for _, r := range f.Redeemed {
		if r == reward {
			return true
		}
	}
	return false
}

// Clone deep-copies the farm so cached copies never alias a farm being mutated
func (f *Farm) Clone() *Farm {
	out := *f
	out.Seeds = cloneCounts(f.Seeds)
	out.Fruits = cloneCounts(f.Fruits)
	out.Letters = cloneCounts(f.Letters)
	out.Pets = cloneCounts(f.Pets)
	out.Plots = make([]Plot, len(f.Plots))
	for i, p := range f.Plots {
		out.Plots[i] = p.Clone()
	}
	out.CheckIns = make(map[string][]int, len(f.CheckIns))
	for k, days := range f.CheckIns {
		out.CheckIns[k] = append([]int(nil), days...)
	}
	out.Redeemed = append([]string{}, f.Redeemed...)
	if f.Robot != nil {
		r := *f.Robot
		out.Robot = &r
	}
	return &out
}

// Normalize fills nil collections after decoding a partially populated farm
func (f *Farm) Normalize() {
	if f.Seeds == nil {
		f.Seeds = map[string]int64{}
	}
	if f.Fruits == nil {
		f.Fruits = map[string]int64{}
	}
	if f.Letters == nil {
		f.Letters = map[string]int64{}
	}
	if f.Pets == nil {
		f.Pets = map[string]int64{}
	}
	if f.CheckIns == nil {
		f.CheckIns = map[string][]int{}
	}
	if f.Redeemed == nil {
		f.Redeemed = []string{}
	}
	for i := range f.Plots {
		if f.Plots[i].WaterRequirements == nil {
			f.Plots[i].WaterRequirements = []Requirement{}
		}
		if f.Plots[i].WeedRequirements == nil {
			f.Plots[i].WeedRequirements = []Requirement{}
		}
	}
}

func cloneCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
