package growth

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

var (
	radish = domain.Crop{ID: "radish", Exp: 3, Stages: [3]int64{25, 50, 75}, WitherAfter: 60, LevelReq: 1}
	grape  = domain.Crop{ID: "grape", Exp: 23, Stages: [3]int64{200, 400, 600}, WitherAfter: 300, LevelReq: 4}
	cocoa  = domain.Crop{ID: "cocoa", Exp: 110, Stages: [3]int64{7200, 14400, 21600}, WitherAfter: 2400, LevelReq: 10}
	cherry = domain.Crop{ID: "cherry", Exp: 420, Stages: [3]int64{108000, 216000, 324000}, WitherAfter: 3600, LevelReq: 18}
)

type cropTable map[string]domain.Crop

func (c cropTable) Crop(id string) (domain.Crop, bool) {
	crop, ok := c[id]
	return crop, ok
}

var testCrops = cropTable{radish.ID: radish, grape.ID: grape, cocoa.ID: cocoa, cherry.ID: cherry}

// fixedRoller always rolls the same values
type fixedRoller struct {
	f float64
	n int64
}

func (r fixedRoller) Float64() float64     { return r.f }
func (r fixedRoller) Int63n(n int64) int64 { return r.n % n }

// noLuck never triggers pests or weeds
var noLuck = fixedRoller{f: 0.999999}

func newTestEngine() *Engine {
	return NewEngine(testCrops, noLuck)
}

func plantedPlot(crop domain.Crop, plantedAt int64, water ...int64) *domain.Plot {
	p := &domain.Plot{ID: 0, Unlocked: true}
	p.Clear()
	p.CropID = crop.ID
	p.PlantedAt = plantedAt
	for _, t := range water {
		p.WaterRequirements = append(p.WaterRequirements, domain.Requirement{TriggerTime: t})
	}
	return p
}

func TestEffectiveElapsed(t *testing.T) {
	tests := []struct {
		name string
		plot *domain.Plot
		now  int64
		want int64
	}{
		{"empty plot", &domain.Plot{}, 1000, 0},
		{"plain elapsed", plantedPlot(radish, 1000), 1030, 30},
		{"pause subtracted", &domain.Plot{CropID: "radish", PlantedAt: 0, PausedDuration: 100}, 116, 16},
		{"clock skew clamps", plantedPlot(radish, 1000), 900, 0},
		{"pause exceeds wall clock", &domain.Plot{CropID: "radish", PlantedAt: 0, PausedDuration: 50}, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveElapsed(tt.plot, tt.now))
		})
	}
}

func TestStageFor_Boundaries(t *testing.T) {
	tests := []struct {
		e        int64
		want     domain.Stage
		wantNext int64
	}{
		{0, domain.StageSeed, 25},
		{24, domain.StageSeed, 1},
		{25, domain.StageSprout, 25},
		{49, domain.StageSprout, 1},
		{50, domain.StageGrowing, 25},
		{74, domain.StageGrowing, 1},
		{75, domain.StageRipe, 60},
		{134, domain.StageRipe, 1},
		{135, domain.StageWither, 0},
		{100000, domain.StageWither, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageFor(radish, tt.e), "e=%d", tt.e)
		assert.Equal(t, tt.wantNext, TimeToNext(radish, tt.e), "e=%d", tt.e)
	}
}

func TestStageFor_ZeroDurations(t *testing.T) {
	instant := domain.Crop{ID: "instant", Stages: [3]int64{0, 0, 0}, WitherAfter: 10}
	assert.Equal(t, domain.StageRipe, StageFor(instant, 0))
	assert.Equal(t, domain.StageWither, StageFor(instant, 10))
}

func TestEngine_Stage(t *testing.T) {
	en := newTestEngine()

	assert.Equal(t, domain.StageEmpty, en.Stage(&domain.Plot{}, 10))
	assert.Equal(t, int64(0), en.TimeToNextStage(&domain.Plot{}, 10))

	unknown := &domain.Plot{CropID: "durian", PlantedAt: 0}
	assert.Equal(t, domain.StageError, en.Stage(unknown, 10))
	assert.Equal(t, int64(0), en.TimeToNextStage(unknown, 10))
}

// Plant radish at 1000 and walk it to harvest
func TestScenario_RadishLifecycle(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 1000)

	assert.Equal(t, domain.StageSeed, en.Stage(p, 1010))
	assert.Equal(t, domain.StageSprout, en.Stage(p, 1030))
	assert.Equal(t, domain.StageRipe, en.Stage(p, 1080))

	res, err := en.Harvest(p, 1080)
	require.NoError(t, err)
	assert.Equal(t, HarvestResult{CropID: "radish", Yield: 1, Exp: 3}, res)
	assert.Equal(t, domain.StageEmpty, en.Stage(p, 1080))
	assert.Empty(t, p.WaterRequirements)
	assert.Empty(t, p.WeedRequirements)
	assert.True(t, p.Unlocked)
}

// An unwatered requirement freezes growth until watered
func TestScenario_PauseAndWater(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 0, 15)

	out := en.Tick(p, 16, 1)
	assert.True(t, out.Paused)
	require.NotNil(t, p.PausedAt)
	assert.Equal(t, int64(16), *p.PausedAt)

	for now := int64(17); now < 116; now++ {
		out = en.Tick(p, now, 1)
		assert.True(t, out.Blocked)
		assert.False(t, out.Paused, "pause opens once")
	}
	assert.Equal(t, int64(100), p.PausedDuration)
	assert.Equal(t, int64(16), EffectiveElapsed(p, 116))
	assert.Equal(t, domain.StageSeed, en.Stage(p, 116))
	assert.True(t, en.Status(p, 116).NeedsWater)

	n, err := en.FulfillWater(p, 116)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Nil(t, p.PausedAt)
	assert.True(t, p.WaterRequirements[0].Done)
	require.NotNil(t, p.WaterRequirements[0].DoneAt)
	assert.Equal(t, int64(116), *p.WaterRequirements[0].DoneAt)

	out = en.Tick(p, 117, 1)
	assert.False(t, out.Blocked)
	assert.Equal(t, int64(100), p.PausedDuration)
	assert.Equal(t, int64(27), EffectiveElapsed(p, 127))
	assert.Equal(t, domain.StageSprout, en.Stage(p, 127))
}

func TestTick_ResumeClearsPausedAt(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 0, 5)
	pausedAt := int64(3)
	p.PausedAt = &pausedAt
	p.WaterRequirements[0].Done = true

	out := en.Tick(p, 10, 1)
	assert.True(t, out.Resumed)
	assert.True(t, out.Changed())
	assert.Nil(t, p.PausedAt)
}

func TestTick_NothingChanges(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 0, 50)

	out := en.Tick(p, 10, 1)
	assert.False(t, out.Changed())
	assert.Equal(t, int64(0), p.PausedDuration)
}

func TestTick_WeedRequirementBlocksToo(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(grape, 0)
	p.WeedRequirements = []domain.Requirement{{TriggerTime: 10}}

	out := en.Tick(p, 20, 1)
	assert.True(t, out.Paused)
	assert.Equal(t, int64(1), p.PausedDuration)
}

func TestTick_StepSize(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 0, 0)

	en.Tick(p, 5, 5)
	en.Tick(p, 10, 5)
	assert.Equal(t, int64(10), p.PausedDuration)
	assert.Equal(t, int64(0), EffectiveElapsed(p, 10))
}

func TestTick_SkipsEmptyAndUnknown(t *testing.T) {
	en := NewEngine(testCrops, fixedRoller{f: 0})

	empty := &domain.Plot{}
	assert.Equal(t, TickOutcome{}, en.Tick(empty, 100, 1))
	assert.False(t, empty.HasWeeds)

	unknown := &domain.Plot{CropID: "durian", WaterRequirements: []domain.Requirement{{TriggerTime: 0}}}
	out := en.Tick(unknown, 100, 1)
	assert.True(t, out.Invalid)
	assert.False(t, out.Changed())
	assert.Nil(t, unknown.PausedAt)
}

func TestTick_Pests(t *testing.T) {
	lucky := NewEngine(testCrops, fixedRoller{f: 0}, WithChances(0.004, 0))

	tests := []struct {
		name      string
		now       int64
		wantPests bool
	}{
		{"seed is immune", 10, false},
		{"sprout is immune", 30, false},
		{"growing", 60, true},
		{"ripe", 80, true},
		{"withered is immune", 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plantedPlot(radish, 0)
			out := lucky.Tick(p, tt.now, 1)
			assert.Equal(t, tt.wantPests, p.Pests)
			assert.Equal(t, tt.wantPests, out.PestsAppeared)
		})
	}

	t.Run("pests never roll twice", func(t *testing.T) {
		p := plantedPlot(radish, 0)
		p.Pests = true
		out := lucky.Tick(p, 60, 1)
		assert.False(t, out.PestsAppeared)
		assert.True(t, p.Pests)
	})
}

func TestTick_CosmeticWeeds(t *testing.T) {
	en := NewEngine(testCrops, fixedRoller{f: 0}, WithChances(0, 0.002))

	p := plantedPlot(radish, 0)
	out := en.Tick(p, 10, 1)
	assert.True(t, out.WeedsAppeared)
	assert.True(t, p.HasWeeds)
	assert.False(t, out.Blocked, "cosmetic weeds never pause growth")

	withered := plantedPlot(radish, 0)
	out = en.Tick(withered, 500, 1)
	assert.False(t, out.WeedsAppeared)
}

func TestFulfillWater(t *testing.T) {
	en := newTestEngine()

	t.Run("empty plot", func(t *testing.T) {
		_, err := en.FulfillWater(&domain.Plot{}, 10)
		assert.ErrorIs(t, err, domain.ErrPlotEmpty)
	})

	t.Run("nothing due yet", func(t *testing.T) {
		p := plantedPlot(radish, 0, 50)
		_, err := en.FulfillWater(p, 10)
		assert.ErrorIs(t, err, domain.ErrNothingToWater)
		assert.False(t, p.WaterRequirements[0].Done, "no pre-watering")
	})

	t.Run("only due requirements complete", func(t *testing.T) {
		p := plantedPlot(grape, 0, 10, 20, 300)
		n, err := en.FulfillWater(p, 25)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.True(t, p.WaterRequirements[0].Done)
		assert.True(t, p.WaterRequirements[1].Done)
		assert.False(t, p.WaterRequirements[2].Done)
	})

	t.Run("already done is nothing to water", func(t *testing.T) {
		p := plantedPlot(radish, 0, 5)
		_, err := en.FulfillWater(p, 10)
		require.NoError(t, err)
		_, err = en.FulfillWater(p, 11)
		assert.ErrorIs(t, err, domain.ErrNothingToWater)
	})
}

func TestFulfillWeed(t *testing.T) {
	en := newTestEngine()

	t.Run("due requirement", func(t *testing.T) {
		p := plantedPlot(grape, 0)
		p.WeedRequirements = []domain.Requirement{{TriggerTime: 5}}
		pausedAt := int64(6)
		p.PausedAt = &pausedAt

		n, err := en.FulfillWeed(p, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Nil(t, p.PausedAt)
	})

	t.Run("cosmetic weeds only", func(t *testing.T) {
		p := plantedPlot(radish, 0)
		p.HasWeeds = true

		n, err := en.FulfillWeed(p, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.False(t, p.HasWeeds)
	})

	t.Run("nothing to weed", func(t *testing.T) {
		_, err := en.FulfillWeed(plantedPlot(radish, 0), 10)
		assert.ErrorIs(t, err, domain.ErrNothingToWeed)
		reason, ok := domain.ReasonOf(err)
		assert.True(t, ok)
		assert.Equal(t, domain.ReasonNothingToWeed, reason)
	})

	t.Run("keeps pause when other requirements still due", func(t *testing.T) {
		p := plantedPlot(grape, 0, 5)
		p.WeedRequirements = []domain.Requirement{{TriggerTime: 5}}
		en.Tick(p, 10, 1)
		require.NotNil(t, p.PausedAt)

		_, err := en.FulfillWeed(p, 11)
		require.NoError(t, err)
		assert.Nil(t, p.PausedAt)

		out := en.Tick(p, 12, 1)
		assert.True(t, out.Paused, "water still due, pause re-derived")
	})
}

func TestApplyFertilizer(t *testing.T) {
	en := newTestEngine()

	t.Run("instant crop jumps to ripe", func(t *testing.T) {
		p := plantedPlot(radish, 1000)
		require.NoError(t, en.ApplyFertilizer(p, 1000))
		assert.Equal(t, int64(925), p.PlantedAt)
		assert.Equal(t, int64(75), EffectiveElapsed(p, 1000))
		assert.Equal(t, domain.StageRipe, en.Stage(p, 1000))
		assert.True(t, p.Fertilized)
	})

	t.Run("instant crop drops pause accounting", func(t *testing.T) {
		p := plantedPlot(radish, 0, 10)
		p.PausedDuration = 40
		pausedAt := int64(50)
		p.PausedAt = &pausedAt

		require.NoError(t, en.ApplyFertilizer(p, 60))
		assert.Equal(t, domain.StageRipe, en.Stage(p, 60))
		assert.Nil(t, p.PausedAt)
	})

	tests := []struct {
		name          string
		crop          domain.Crop
		plantedAt     int64
		now           int64
		wantPlantedAt int64
	}{
		{"half factor doubles elapsed", grape, 1000, 1100, 900},
		{"five sixths", cocoa, 0, 5000, -1000},
		{"twenty-three twenty-fourths floors", cherry, 0, 1000, 1000 - 1000*24/23},
		{"raw elapsed ignores pause", grape, 0, 100, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plantedPlot(tt.crop, tt.plantedAt)
			p.PausedDuration = 30
			require.NoError(t, en.ApplyFertilizer(p, tt.now))
			assert.Equal(t, tt.wantPlantedAt, p.PlantedAt)
			assert.Equal(t, int64(30), p.PausedDuration)
		})
	}

	t.Run("second application fails without mutating", func(t *testing.T) {
		p := plantedPlot(grape, 1000)
		require.NoError(t, en.ApplyFertilizer(p, 1100))
		before := p.PlantedAt

		err := en.ApplyFertilizer(p, 1200)
		assert.ErrorIs(t, err, domain.ErrAlreadyFertilized)
		assert.Equal(t, before, p.PlantedAt)
	})

	t.Run("empty plot", func(t *testing.T) {
		assert.ErrorIs(t, en.ApplyFertilizer(&domain.Plot{}, 10), domain.ErrPlotEmpty)
	})

	t.Run("unknown crop", func(t *testing.T) {
		p := &domain.Plot{CropID: "durian"}
		assert.ErrorIs(t, en.ApplyFertilizer(p, 10), domain.ErrUnknownCrop)
		assert.False(t, p.Fertilized)
	})
}

func TestHarvest_Rejects(t *testing.T) {
	en := newTestEngine()

	tests := []struct {
		name    string
		plot    *domain.Plot
		now     int64
		wantErr error
	}{
		{"empty", &domain.Plot{}, 100, domain.ErrPlotEmpty},
		{"seed", plantedPlot(radish, 0), 10, domain.ErrNotRipe},
		{"growing", plantedPlot(radish, 0), 74, domain.ErrNotRipe},
		{"withered", plantedPlot(radish, 0), 135, domain.ErrNotRipe},
		{"pests", func() *domain.Plot { p := plantedPlot(radish, 0); p.Pests = true; return p }(), 80, domain.ErrPestsPresent},
		{"unknown crop", &domain.Plot{CropID: "durian"}, 80, domain.ErrUnknownCrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.plot.Clone()
			_, err := en.Harvest(tt.plot, tt.now)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, *tt.plot, "failed harvest must not mutate")
		})
	}
}

func TestClearPests(t *testing.T) {
	en := newTestEngine()

	p := plantedPlot(radish, 0)
	assert.ErrorIs(t, en.ClearPests(p), domain.ErrNoPests)

	p.Pests = true
	require.NoError(t, en.ClearPests(p))
	assert.False(t, p.Pests)

	assert.ErrorIs(t, en.ClearPests(&domain.Plot{}), domain.ErrPlotEmpty)
}

func TestShovel(t *testing.T) {
	en := newTestEngine()

	p := plantedPlot(radish, 0, 5)
	p.Pests = true
	cropID, err := en.Shovel(p)
	require.NoError(t, err)
	assert.Equal(t, "radish", cropID)
	assert.False(t, p.IsPlanted())
	assert.False(t, p.Pests)
	assert.Empty(t, p.WaterRequirements)

	_, err = en.Shovel(p)
	assert.ErrorIs(t, err, domain.ErrPlotEmpty)
}

func TestPlant(t *testing.T) {
	en := NewEngine(testCrops, rand.New(rand.NewSource(3)))
	p := &domain.Plot{ID: 4, Unlocked: true, Pests: true, Fertilized: true, PausedDuration: 9}

	en.Plant(p, cherry, 500)

	assert.Equal(t, "cherry", p.CropID)
	assert.Equal(t, int64(500), p.PlantedAt)
	assert.Equal(t, 4, p.ID)
	assert.True(t, p.Unlocked)
	assert.False(t, p.Pests)
	assert.False(t, p.Fertilized)
	assert.Equal(t, int64(0), p.PausedDuration)
	assert.Nil(t, p.PausedAt)
	assert.Len(t, p.WaterRequirements, 5)
	assert.Len(t, p.WeedRequirements, 5)
	assert.Equal(t, domain.StageSeed, en.Stage(p, 500))
}

// Along a never-paused timeline the stage only moves forward
func TestProperty_StageMonotonic(t *testing.T) {
	order := map[domain.Stage]int{
		domain.StageSeed: 1, domain.StageSprout: 2, domain.StageGrowing: 3,
		domain.StageRipe: 4, domain.StageWither: 5,
	}
	for _, crop := range []domain.Crop{radish, grape, cocoa} {
		prev := 0
		for e := int64(0); e <= crop.WitherAt()+10; e++ {
			cur := order[StageFor(crop, e)]
			assert.GreaterOrEqual(t, cur, prev, "%s regressed at e=%d", crop.ID, e)
			prev = cur
		}
	}
}

// Random tick sequences never shrink the pause counter, and a pause-only
// interval leaves the stage unchanged
func TestProperty_PauseMonotonicAndFreezesStage(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	en := NewEngine(testCrops, rng)

	for trial := 0; trial < 50; trial++ {
		p := &domain.Plot{Unlocked: true}
		en.Plant(p, grape, 0)

		var prevPaused int64
		for now := int64(1); now < 1500; now++ {
			stageBefore := en.Stage(p, now)
			out := en.Tick(p, now, 1)
			assert.GreaterOrEqual(t, p.PausedDuration, prevPaused)
			prevPaused = p.PausedDuration
			if out.Blocked {
				assert.Equal(t, stageBefore, en.Stage(p, now+1))
			}
			if rng.Intn(40) == 0 {
				_, _ = en.FulfillWater(p, now)
				_, _ = en.FulfillWeed(p, now)
			}
		}
	}
}

func BenchmarkTick(b *testing.B) {
	en := NewEngine(testCrops, rand.New(rand.NewSource(1)))
	plots := make([]domain.Plot, domain.PlotCount)
	for i := range plots {
		en.Plant(&plots[i], cocoa, 0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := &plots[i%len(plots)]
		en.Tick(p, int64(i), 1)
	}
}

// A tick landing exactly on the trigger charges the pause straight away; the
// player must still be able to water the paused plot afterwards
func TestScenario_WaterAfterAlignedTick(t *testing.T) {
	en := newTestEngine()
	p := plantedPlot(radish, 0, 10)

	for now := int64(1); now <= 13; now++ {
		en.Tick(p, now, 1)
	}
	require.True(t, p.IsPaused())
	assert.Equal(t, int64(9), EffectiveElapsed(p, 13))
	assert.True(t, en.Status(p, 13).NeedsWater)

	n, err := en.FulfillWater(p, 13)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := en.Tick(p, 14, 1)
	assert.False(t, out.Blocked)
	assert.Equal(t, int64(10), EffectiveElapsed(p, 14))
}
