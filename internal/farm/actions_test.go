package farm

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
)

func requireReason(t *testing.T, err error, want domain.ReasonCode) {
	t.Helper()
	require.Error(t, err)
	code, ok := domain.ReasonOf(err)
	require.True(t, ok, "expected a reason error, got %v", err)
	assert.Equal(t, want, code)
}

func TestPlant(t *testing.T) {
	ctx := context.Background()

	t.Run("plants a seed", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, nil)

		view, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)
		assert.Equal(t, int64(0), view.Seeds["radish"])
		assert.Equal(t, "radish", view.Plots[0].CropID)
		assert.Equal(t, domain.StageSeed, view.Plots[0].Stage)
		assert.Equal(t, testStart, view.Plots[0].PlantedAt)
		require.Len(t, view.Plots[0].WaterRequirements, 1)
		assert.Equal(t, int64(10), view.Plots[0].WaterRequirements[0].TriggerTime)
		assert.Empty(t, view.Plots[0].WeedRequirements)
		assert.Equal(t, []event.Type{event.CropPlanted}, h.events.Types())
	})

	t.Run("accepts indexed seed ids", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, nil)

		view, err := h.svc.Plant(ctx, testAddress, 1, "seed_0")
		require.NoError(t, err)
		assert.Equal(t, "radish", view.Plots[1].CropID)
	})

	tests := []struct {
		name   string
		setup  func(f *domain.Farm)
		plotID int
		cropID string
		want   domain.ReasonCode
	}{
		{"plot out of range", rich, domain.PlotCount, "radish", domain.ReasonInvalidPlot},
		{"negative plot", rich, -1, "radish", domain.ReasonInvalidPlot},
		{"locked plot", rich, 10, "radish", domain.ReasonPlotLocked},
		{"occupied plot", func(f *domain.Farm) { rich(f); f.Plots[0].CropID = "radish"; f.Plots[0].PlantedAt = testStart }, 0, "radish", domain.ReasonPlotOccupied},
		{"unknown crop", rich, 0, "mandrake", domain.ReasonUnknownCrop},
		{"no seeds", func(f *domain.Farm) { f.Seeds = map[string]int64{} }, 0, "radish", domain.ReasonInsufficientSeeds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, unlucky)
			h.seed(t, tt.setup)
			before := h.stored(t)

			_, err := h.svc.Plant(ctx, testAddress, tt.plotID, tt.cropID)

			requireReason(t, err, tt.want)
			assert.Equal(t, before, h.stored(t), "failed action must not mutate the farm")
			assert.Empty(t, h.events.Events())
		})
	}

	t.Run("unknown farm", func(t *testing.T) {
		h := newHarness(t, unlucky)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		assert.ErrorIs(t, err, domain.ErrFarmNotFound)
	})
}

func TestWater(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)

	_, err := h.svc.Water(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonPlotEmpty)

	_, err = h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)

	h.clock.Advance(5)
	_, err = h.svc.Water(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonNothingToWater)

	h.clock.Advance(5)
	view, err := h.svc.Water(ctx, testAddress, 0)
	require.NoError(t, err)
	req := view.Plots[0].WaterRequirements[0]
	assert.True(t, req.Done)
	require.NotNil(t, req.DoneAt)
	assert.Equal(t, testStart+10, *req.DoneAt)
	assert.False(t, view.Plots[0].NeedsWater)

	tended := h.events.OfType(event.CropTended)
	require.Len(t, tended, 1)
	assert.Equal(t, domain.ActionWater, tended[0].Payload.(domain.CropPayloadV1).Action)

	_, err = h.svc.Water(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonNothingToWater)
}

func TestWeed(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)
	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)

	_, err = h.svc.Weed(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonNothingToWeed)

	_, err = h.store.Update(ctx, testAddress, func(f *domain.Farm) error {
		f.Plots[0].HasWeeds = true
		return nil
	})
	require.NoError(t, err)

	view, err := h.svc.Weed(ctx, testAddress, 0)
	require.NoError(t, err)
	assert.False(t, view.Plots[0].HasWeeds)
	assert.False(t, view.Plots[0].NeedsWeeding)
}

func TestFertilize(t *testing.T) {
	ctx := context.Background()

	t.Run("low level crops ripen instantly", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, rich)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)

		view, err := h.svc.Fertilize(ctx, testAddress, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.StageRipe, view.Plots[0].Stage)
		assert.True(t, view.Plots[0].Fertilized)
		assert.Equal(t, int64(4), view.Fertilizer)
		assert.Len(t, h.events.OfType(event.CropFertilized), 1)

		_, err = h.svc.Fertilize(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonAlreadyFertilized)
		assert.Equal(t, int64(4), h.stored(t).Fertilizer)
	})

	t.Run("needs fertilizer", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, func(f *domain.Farm) { f.Seeds["radish"] = 1 })
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)

		_, err = h.svc.Fertilize(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonInsufficientFertilizer)
		assert.False(t, h.stored(t).Plots[0].Fertilized)
	})

	t.Run("needs a crop", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, rich)

		_, err := h.svc.Fertilize(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonPlotEmpty)
	})
}

func TestHarvest(t *testing.T) {
	ctx := context.Background()

	t.Run("ripe crop yields fruit, exp and a letter", func(t *testing.T) {
		h := newHarness(t, lucky)
		h.seed(t, rich)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)

		h.clock.Advance(30)
		_, err = h.svc.Harvest(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonNotRipe)

		h.clock.Advance(50)
		res, err := h.svc.Harvest(ctx, testAddress, 0)
		require.NoError(t, err)
		assert.Equal(t, "radish", res.CropID)
		assert.Equal(t, int64(1), res.Yield)
		assert.Equal(t, int64(3), res.Exp)
		assert.Equal(t, int64(1), res.Farm.Fruits["radish"])
		assert.Equal(t, int64(3), res.Farm.Exp)
		assert.False(t, res.Farm.Plots[0].IsPlanted())
		assert.True(t, res.Farm.Plots[0].Unlocked)

		letters := h.catalog.DropLetters()
		want := letters[10%len(letters)]
		assert.Equal(t, want, res.Letter)
		assert.Equal(t, int64(1), res.Farm.Letters[want])
		assert.Equal(t, []event.Type{event.CropPlanted, event.CropHarvested, event.LetterDropped}, h.events.Types())
	})

	t.Run("missed letter roll drops nothing", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, rich)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)
		h.clock.Advance(80)

		res, err := h.svc.Harvest(ctx, testAddress, 0)
		require.NoError(t, err)
		assert.Empty(t, res.Letter)
		assert.Empty(t, res.Farm.Letters)
		assert.Empty(t, h.events.OfType(event.LetterDropped))
	})

	t.Run("pests block harvest", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, rich)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)
		h.clock.Advance(80)
		_, err = h.store.Update(ctx, testAddress, func(f *domain.Farm) error {
			f.Plots[0].Pests = true
			return nil
		})
		require.NoError(t, err)

		_, err = h.svc.Harvest(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonPestsPresent)
		assert.Equal(t, "radish", h.stored(t).Plots[0].CropID)

		_, err = h.svc.Pesticide(ctx, testAddress, 0)
		require.NoError(t, err)
		_, err = h.svc.Harvest(ctx, testAddress, 0)
		require.NoError(t, err)
	})

	t.Run("withered crops cannot be harvested", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, rich)
		_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
		require.NoError(t, err)
		h.clock.Advance(135)

		_, err = h.svc.Harvest(ctx, testAddress, 0)
		requireReason(t, err, domain.ReasonNotRipe)
	})
}

func TestPesticide(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)

	_, err := h.svc.Pesticide(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonPlotEmpty)

	_, err = h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)
	_, err = h.svc.Pesticide(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonNoPests)
}

func TestShovel(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)

	_, err := h.svc.Shovel(ctx, testAddress, 0)
	requireReason(t, err, domain.ReasonPlotEmpty)

	_, err = h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)
	view, err := h.svc.Shovel(ctx, testAddress, 0)
	require.NoError(t, err)
	assert.False(t, view.Plots[0].IsPlanted())
	assert.Equal(t, domain.StageEmpty, view.Plots[0].Stage)

	shoveled := h.events.OfType(event.CropShoveled)
	require.Len(t, shoveled, 1)
	assert.Equal(t, "radish", shoveled[0].Payload.(domain.CropPayloadV1).CropID)
}

func TestUnlockPlot(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(f *domain.Farm)
		plotID int
		want   domain.ReasonCode
	}{
		{"already unlocked", rich, 0, domain.ReasonPlotAlreadyUnlocked},
		{"out of range", rich, domain.PlotCount, domain.ReasonInvalidPlot},
		{"level too low", func(f *domain.Farm) { f.Coins = decimal.NewFromInt(1000) }, 6, domain.ReasonLevelTooLow},
		{"not enough coins", func(f *domain.Farm) { f.Exp = 30; f.Coins = decimal.NewFromInt(499) }, 6, domain.ReasonInsufficientCoins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, unlucky)
			h.seed(t, tt.setup)
			before := h.stored(t)

			_, err := h.svc.UnlockPlot(ctx, testAddress, tt.plotID)

			requireReason(t, err, tt.want)
			assert.Equal(t, before, h.stored(t))
		})
	}

	t.Run("unlocks and charges", func(t *testing.T) {
		h := newHarness(t, unlucky)
		h.seed(t, func(f *domain.Farm) { f.Exp = 30; f.Coins = decimal.NewFromInt(600) })

		view, err := h.svc.UnlockPlot(ctx, testAddress, 6)
		require.NoError(t, err)
		assert.True(t, view.Plots[6].Unlocked)
		assert.Zero(t, view.Plots[6].UnlockCost)
		assert.True(t, view.Coins.Equal(decimal.NewFromInt(100)))

		unlocked := h.events.OfType(event.PlotUnlocked)
		require.Len(t, unlocked, 1)
		assert.Equal(t, "500", unlocked[0].Payload.(domain.PurchasePayloadV1).Coins)
	})
}

func TestSubscribeRobot(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, nil)

	_, err := h.svc.SubscribeRobot(ctx, testAddress, RobotRequest{Name: "Ann", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, h.stored(t).Robot)

	_, err = h.svc.SubscribeRobot(ctx, testAddress, RobotRequest{Email: "ann@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	view, err := h.svc.SubscribeRobot(ctx, testAddress, RobotRequest{Name: "Ann", Email: "ann@example.com", AcceptMarketing: true})
	require.NoError(t, err)
	require.NotNil(t, view.Robot)
	assert.Equal(t, "ann@example.com", view.Robot.Email)
	assert.True(t, view.Robot.AcceptMarketing)
	assert.Equal(t, testStart, view.Robot.SubscribedAt)
	assert.Len(t, h.events.OfType(event.RobotSubscribed), 1)
}
