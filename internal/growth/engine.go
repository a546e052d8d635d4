// Package growth is the plot state machine. Stage and progress are derived
// from timestamps on every read; only the plot's timestamps, pause counter,
// requirement flags and pest flag are stored.
package growth

import (
	"fmt"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// CropLookup resolves crop definitions by id
type CropLookup interface {
	Crop(id string) (domain.Crop, bool)
}

// Engine provides pure growth logic (no DB dependencies). Callers serialize
// access to any one plot.
type Engine struct {
	crops      CropLookup
	rng        utils.Roller
	pestChance float64
	weedChance float64
}

// Option tunes an Engine
type Option func(*Engine)

// WithChances overrides the per-tick pest and cosmetic weed probabilities
func WithChances(pest, weed float64) Option {
	return func(e *Engine) {
		e.pestChance = pest
		e.weedChance = weed
	}
}

// NewEngine creates a growth engine
func NewEngine(crops CropLookup, rng utils.Roller, opts ...Option) *Engine {
	e := &Engine{
		crops:      crops,
		rng:        rng,
		pestChance: domain.PestProbability,
		weedChance: domain.WeedProbability,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Status is the derived, read-only view of a plot at an instant
type Status struct {
	Stage        domain.Stage `json:"stage"`
	Elapsed      int64        `json:"elapsed"`
	TimeToNext   int64        `json:"timeToNext"`
	Paused       bool         `json:"paused"`
	NeedsWater   bool         `json:"needsWater"`
	NeedsWeeding bool         `json:"needsWeeding"`
}

// TickOutcome reports what a tick changed on one plot
type TickOutcome struct {
	Blocked       bool
	Paused        bool
	Resumed       bool
	PestsAppeared bool
	WeedsAppeared bool
	Invalid       bool
}

// Changed reports whether the plot was mutated
func (o TickOutcome) Changed() bool {
	return o.Blocked || o.Resumed || o.PestsAppeared || o.WeedsAppeared
}

// HarvestResult is what a successful harvest yields
type HarvestResult struct {
	CropID string
	Yield  int64
	Exp    int64
}

// EffectiveElapsed is wall-clock time since planting minus accumulated
// pause, never negative. Empty plots read 0.
func EffectiveElapsed(p *domain.Plot, now int64) int64 {
	if !p.IsPlanted() {
		return 0
	}
	e := now - p.PlantedAt - p.PausedDuration
	if e < 0 {
		return 0
	}
	return e
}

// StageFor maps effective elapsed time onto the crop's stage table.
// Lower bounds are inclusive.
func StageFor(crop domain.Crop, e int64) domain.Stage {
	switch {
	case e < crop.SproutAt():
		return domain.StageSeed
	case e < crop.GrowingAt():
		return domain.StageSprout
	case e < crop.RipeAt():
		return domain.StageGrowing
	case e < crop.WitherAt():
		return domain.StageRipe
	default:
		return domain.StageWither
	}
}

// TimeToNext is the effective time until the next stage boundary; 0 once withered
func TimeToNext(crop domain.Crop, e int64) int64 {
	switch StageFor(crop, e) {
	case domain.StageSeed:
		return crop.SproutAt() - e
	case domain.StageSprout:
		return crop.GrowingAt() - e
	case domain.StageGrowing:
		return crop.RipeAt() - e
	case domain.StageRipe:
		return crop.WitherAt() - e
	default:
		return 0
	}
}

func (en *Engine) lookup(p *domain.Plot) (domain.Crop, error) {
	crop, ok := en.crops.Crop(p.CropID)
	if !ok {
		return domain.Crop{}, fmt.Errorf("%w: %s on plot %d", domain.ErrUnknownCrop, p.CropID, p.ID)
	}
	return crop, nil
}

// Stage resolves the plot's stage at now. A plot whose crop is not in the
// catalog reports StageError.
func (en *Engine) Stage(p *domain.Plot, now int64) domain.Stage {
	if !p.IsPlanted() {
		return domain.StageEmpty
	}
	crop, err := en.lookup(p)
	if err != nil {
		return domain.StageError
	}
	return StageFor(crop, EffectiveElapsed(p, now))
}

// TimeToNextStage is the effective time until the plot's next stage boundary
func (en *Engine) TimeToNextStage(p *domain.Plot, now int64) int64 {
	if !p.IsPlanted() {
		return 0
	}
	crop, err := en.lookup(p)
	if err != nil {
		return 0
	}
	return TimeToNext(crop, EffectiveElapsed(p, now))
}

// Status derives the full read model for one plot
func (en *Engine) Status(p *domain.Plot, now int64) Status {
	e := EffectiveElapsed(p, now)
	h := dueHorizon(p, now)
	return Status{
		Stage:        en.Stage(p, now),
		Elapsed:      e,
		TimeToNext:   en.TimeToNextStage(p, now),
		Paused:       p.IsPaused(),
		NeedsWater:   p.IsPlanted() && anyDue(p.WaterRequirements, h),
		NeedsWeeding: p.IsPlanted() && (anyDue(p.WeedRequirements, h) || p.HasWeeds),
	}
}

// dueHorizon is the effective elapsed time up to which requirements count as
// due for the player. A tick that finds a plot blocked charges its step to the
// pause, which leaves effective elapsed up to one tick short of the trigger
// that blocked it; paused plots therefore look one tick ahead.
func dueHorizon(p *domain.Plot, now int64) int64 {
	e := EffectiveElapsed(p, now)
	if p.IsPaused() {
		e += domain.TickSeconds
	}
	return e
}

// Plant puts crop into an empty plot at now with freshly drawn requirements
func (en *Engine) Plant(p *domain.Plot, crop domain.Crop, now int64) {
	p.Clear()
	p.CropID = crop.ID
	p.PlantedAt = now
	p.WaterRequirements = GenerateRequirements(en.rng, crop, WaterCount(crop.LevelReq))
	p.WeedRequirements = GenerateRequirements(en.rng, crop, WeedCount(crop.LevelReq))
}

// Tick advances one plot by step seconds of wall-clock. Any due, undone
// requirement holds effective elapsed still by growing the pause counter in
// lockstep with the clock. Pests and cosmetic weeds are rolled afterwards.
func (en *Engine) Tick(p *domain.Plot, now, step int64) TickOutcome {
	var out TickOutcome
	if !p.IsPlanted() {
		return out
	}
	crop, err := en.lookup(p)
	if err != nil {
		out.Invalid = true
		return out
	}

	e := EffectiveElapsed(p, now)
	if anyDue(p.WaterRequirements, e) || anyDue(p.WeedRequirements, e) {
		out.Blocked = true
		if p.PausedAt == nil {
			pausedAt := now
			p.PausedAt = &pausedAt
			out.Paused = true
		}
		p.PausedDuration += step
	} else if p.PausedAt != nil {
		p.PausedAt = nil
		out.Resumed = true
	}

	stage := StageFor(crop, e)
	if (stage == domain.StageGrowing || stage == domain.StageRipe) && !p.Pests && utils.Chance(en.rng, en.pestChance) {
		p.Pests = true
		out.PestsAppeared = true
	}
	if stage != domain.StageWither && !p.HasWeeds && utils.Chance(en.rng, en.weedChance) {
		p.HasWeeds = true
		out.WeedsAppeared = true
	}
	return out
}

// FulfillWater completes every due watering requirement and returns how many
// were completed
func (en *Engine) FulfillWater(p *domain.Plot, now int64) (int, error) {
	if !p.IsPlanted() {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	n := fulfill(p, p.WaterRequirements, now)
	if n == 0 {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrNothingToWater, p.ID)
	}
	return n, nil
}

// FulfillWeed completes every due weeding requirement and pulls cosmetic
// weeds. It fails only when there was neither.
func (en *Engine) FulfillWeed(p *domain.Plot, now int64) (int, error) {
	if !p.IsPlanted() {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	n := fulfill(p, p.WeedRequirements, now)
	pulled := p.HasWeeds
	p.HasWeeds = false
	if n == 0 && !pulled {
		return 0, fmt.Errorf("%w: plot %d", domain.ErrNothingToWeed, p.ID)
	}
	return n, nil
}

func fulfill(p *domain.Plot, reqs []domain.Requirement, now int64) int {
	e := dueHorizon(p, now)
	n := 0
	for i := range reqs {
		if reqs[i].IsDue(e) {
			doneAt := now
			reqs[i].Done = true
			reqs[i].DoneAt = &doneAt
			n++
		}
	}
	if n > 0 {
		p.PausedAt = nil
	}
	return n
}

// CheckFertilize reports why the plot cannot take fertilizer, if it cannot
func CheckFertilize(p *domain.Plot) error {
	if !p.IsPlanted() {
		return fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	if p.Fertilized {
		return fmt.Errorf("%w: plot %d", domain.ErrAlreadyFertilized, p.ID)
	}
	return nil
}

// ApplyFertilizer warps plantedAt backwards by the crop's reduction factor.
// Instant crops jump straight to RIPE and drop their pause accounting; the
// rest rescale raw elapsed time by 1/factor.
func (en *Engine) ApplyFertilizer(p *domain.Plot, now int64) error {
	if err := CheckFertilize(p); err != nil {
		return err
	}
	crop, err := en.lookup(p)
	if err != nil {
		return err
	}

	factor := FertilizerFactor(crop.LevelReq)
	if factor.IsInstant() {
		p.PlantedAt = now - crop.RipeAt()
		p.PausedDuration = 0
		p.PausedAt = nil
	} else {
		elapsed := now - p.PlantedAt
		if elapsed < 0 {
			elapsed = 0
		}
		p.PlantedAt = now - elapsed*factor.Den/factor.Num
	}
	p.Fertilized = true
	return nil
}

// Harvest takes the crop off a ripe, pest-free plot and clears it
func (en *Engine) Harvest(p *domain.Plot, now int64) (HarvestResult, error) {
	if !p.IsPlanted() {
		return HarvestResult{}, fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	crop, err := en.lookup(p)
	if err != nil {
		return HarvestResult{}, err
	}
	if stage := StageFor(crop, EffectiveElapsed(p, now)); stage != domain.StageRipe {
		return HarvestResult{}, fmt.Errorf("%w: plot %d is %s", domain.ErrNotRipe, p.ID, stage)
	}
	if p.Pests {
		return HarvestResult{}, fmt.Errorf("%w: plot %d", domain.ErrPestsPresent, p.ID)
	}

	p.Clear()
	return HarvestResult{
		CropID: crop.ID,
		Yield:  domain.YieldPerHarvest,
		Exp:    crop.Exp * domain.YieldPerHarvest,
	}, nil
}

// ClearPests removes pests from a planted plot
func (en *Engine) ClearPests(p *domain.Plot) error {
	if !p.IsPlanted() {
		return fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	if !p.Pests {
		return fmt.Errorf("%w: plot %d", domain.ErrNoPests, p.ID)
	}
	p.Pests = false
	return nil
}

// Shovel removes whatever is planted, in any stage
func (en *Engine) Shovel(p *domain.Plot) (string, error) {
	if !p.IsPlanted() {
		return "", fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, p.ID)
	}
	cropID := p.CropID
	p.Clear()
	return cropID, nil
}

func anyDue(reqs []domain.Requirement, e int64) bool {
	for _, r := range reqs {
		if r.IsDue(e) {
			return true
		}
	}
	return false
}
