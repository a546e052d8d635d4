package farm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
)

func TestTickJob_PausesWhileWaterIsDue(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)
	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)

	// Before the trigger nothing changes
	h.clock.Advance(5)
	stats := h.tick.Run(ctx)
	assert.Equal(t, 1, stats.Farms)
	assert.Equal(t, 0, stats.Updated)

	// The water trigger at 10s freezes effective elapsed
	h.clock.Advance(5)
	stats = h.tick.Run(ctx)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.PausedPlots)

	for i := 0; i < 3; i++ {
		h.clock.Advance(1)
		h.tick.Run(ctx)
	}
	plot := h.stored(t).Plots[0]
	require.NotNil(t, plot.PausedAt)
	assert.Equal(t, testStart+10, *plot.PausedAt)
	assert.Equal(t, int64(4), plot.PausedDuration)
	assert.Equal(t, int64(9), growth.EffectiveElapsed(&plot, h.clock.Now()))
	assert.True(t, h.engine.Status(&plot, h.clock.Now()).NeedsWater)

	// Watering lets time flow again
	_, err = h.svc.Water(ctx, testAddress, 0)
	require.NoError(t, err)
	h.clock.Advance(1)
	h.tick.Run(ctx)

	plot = h.stored(t).Plots[0]
	assert.Nil(t, plot.PausedAt)
	assert.Equal(t, int64(4), plot.PausedDuration)
	assert.Equal(t, int64(10), growth.EffectiveElapsed(&plot, h.clock.Now()))
}

func TestTickJob_StepFollowsInterval(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)
	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)

	job := NewTickJob(h.store, h.engine, h.clock, h.events, 5*time.Second)
	h.clock.Advance(10)
	job.Run(ctx)

	assert.Equal(t, int64(5), h.stored(t).Plots[0].PausedDuration)
	assert.Equal(t, int64(1), NewTickJob(h.store, h.engine, h.clock, h.events, 200*time.Millisecond).step)
}

func TestTickJob_PestsPublishEvents(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky, growth.WithChances(1, 0))
	h.seed(t, rich)
	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)
	_, err = h.svc.Plant(ctx, testAddress, 1, "radish")
	require.NoError(t, err)

	// Still a seed: no pests yet
	h.tick.Run(ctx)
	assert.Empty(t, h.events.OfType(event.PestsAppeared))

	h.clock.Advance(60)
	h.events.Reset()
	stats := h.tick.Run(ctx)
	assert.Equal(t, 2, stats.PestsAppeared)

	appeared := h.events.OfType(event.PestsAppeared)
	require.Len(t, appeared, 2)
	assert.Equal(t, event.SourceTick, appeared[0].GetMetadataValue(event.MetadataKeySource))
	assert.Equal(t, testAddress, appeared[0].Address())
	assert.True(t, h.stored(t).Plots[0].Pests)

	// Pests never re-roll on an infested plot
	h.events.Reset()
	h.clock.Advance(1)
	h.tick.Run(ctx)
	assert.Empty(t, h.events.OfType(event.PestsAppeared))
}

func TestTickJob_SkipsIdleAndInactiveFarms(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)

	stats := h.tick.Run(ctx)
	assert.Equal(t, 1, stats.Farms)
	assert.Equal(t, 0, stats.Updated)

	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)
	h.store.Forget(testAddress)
	h.clock.Advance(20)

	stats = h.tick.Run(ctx)
	assert.Equal(t, 0, stats.Farms)
	assert.Nil(t, h.stored(t).Plots[0].PausedAt, "inactive farms are not ticked")
}

func TestTickJob_RefreshesCachedSnapshot(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, rich)
	_, err := h.svc.Plant(ctx, testAddress, 0, "radish")
	require.NoError(t, err)
	h.clock.Advance(10)

	h.tick.Run(ctx)

	snapshot, ok := h.store.Snapshot(testAddress)
	require.True(t, ok)
	assert.NotNil(t, snapshot.Plots[0].PausedAt, "tick keeps the cached snapshot current")
}

func TestTickJob_SkipsOverlappingPass(t *testing.T) {
	h := newHarness(t, unlucky)

	require.True(t, h.tick.begin())

	stats := h.tick.Run(context.Background())
	assert.True(t, stats.Skipped)

	h.tick.end()
	stats = h.tick.Run(context.Background())
	assert.False(t, stats.Skipped)
}

func TestTickJob_UnknownCropDoesNotStopThePass(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, unlucky)
	h.seed(t, func(f *domain.Farm) {
		rich(f)
		f.Plots[0].CropID = "mandrake"
		f.Plots[0].PlantedAt = testStart
	})
	_, err := h.svc.Plant(ctx, testAddress, 1, "radish")
	require.NoError(t, err)
	h.clock.Advance(10)

	stats := h.tick.Run(ctx)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, 1, stats.PausedPlots)

	view, err := h.svc.GetFarm(ctx, testAddress)
	require.NoError(t, err)
	assert.Equal(t, domain.StageError, view.Plots[0].Stage)
}

func TestTickJob_Process(t *testing.T) {
	h := newHarness(t, unlucky)
	assert.Equal(t, TickJobName, h.tick.Name())
	assert.NoError(t, h.tick.Process(context.Background()))
}
