package farm

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/metrics"
	"github.com/osse101/ZetaFarm_Go/internal/store"
)

// TickJob advances pause accounting and rolls pests on every active farm.
// It is a worker.Job; a pass that starts while another is running is skipped.
type TickJob struct {
	store     *store.Store
	engine    *growth.Engine
	clock     clock.Clock
	publisher event.Publisher

	step    int64
	mu      sync.Mutex
	running bool
}

// TickStats summarizes one pass
type TickStats struct {
	Farms         int
	Updated       int
	PausedPlots   int
	PestsAppeared int
	Errors        int
	Skipped       bool
}

// NewTickJob creates the tick job. Each blocked plot's pause grows by
// interval (whole seconds, at least one) per pass.
func NewTickJob(st *store.Store, engine *growth.Engine, clk clock.Clock, publisher event.Publisher, interval time.Duration) *TickJob {
	step := int64(interval / time.Second)
	if step < domain.TickSeconds {
		step = domain.TickSeconds
	}
	return &TickJob{
		store:     st,
		engine:    engine,
		clock:     clk,
		publisher: publisher,
		step:      step,
	}
}

// Name identifies the job in worker logs
func (j *TickJob) Name() string {
	return TickJobName
}

// Process runs one tick pass
func (j *TickJob) Process(ctx context.Context) error {
	j.Run(ctx)
	return nil
}

// Run executes one pass and reports what it did
func (j *TickJob) Run(ctx context.Context) TickStats {
	if !j.begin() {
		logger.FromContext(ctx).Debug(LogMsgTickPassSkipped)
		return TickStats{Skipped: true}
	}
	defer j.end()

	start := time.Now()
	now := j.clock.Now()
	var stats TickStats
	for _, address := range j.store.Active() {
		if ctx.Err() != nil {
			break
		}
		stats.Farms++
		j.tickFarm(ctx, address, now, &stats)
	}

	metrics.TickDuration.Observe(time.Since(start).Seconds())
	metrics.TickPausedPlots.Set(float64(stats.PausedPlots))
	metrics.TickFarms.Set(float64(stats.Farms))
	logger.FromContext(ctx).Debug(LogMsgTickPassComplete,
		"farms", stats.Farms, "updated", stats.Updated, "paused_plots", stats.PausedPlots, "duration", time.Since(start))
	return stats
}

// begin claims the pass, or reports that one is already running
func (j *TickJob) begin() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.running {
		return false
	}
	j.running = true
	return true
}

func (j *TickJob) end() {
	j.mu.Lock()
	j.running = false
	j.mu.Unlock()
}

func (j *TickJob) tickFarm(ctx context.Context, address string, now int64, stats *TickStats) {
	snapshot, ok := j.store.Snapshot(address)
	if !ok || !hasCrops(snapshot) {
		return
	}

	var pests []domain.Plot
	paused := 0
	changed := false
	_, err := j.store.UpdateQuiet(ctx, address, func(f *domain.Farm) error {
		for i := range f.Plots {
			out := j.engine.Tick(&f.Plots[i], now, j.step)
			if out.Invalid {
				logger.FromContext(ctx).Warn(LogMsgUnknownCropOnTick, "address", address, "plot", i, "crop", f.Plots[i].CropID)
			}
			if out.Changed() {
				changed = true
			}
			if out.PestsAppeared {
				pests = append(pests, f.Plots[i])
			}
			if f.Plots[i].IsPaused() {
				paused++
			}
		}
		if !changed {
			return store.ErrUnchanged
		}
		f.UpdatedAt = now
		return nil
	})
	if err != nil {
		stats.Errors++
		metrics.TickErrors.Inc()
		logger.FromContext(ctx).Error(LogMsgTickFarmFailed, "address", address, "error", err)
		return
	}

	if changed {
		stats.Updated++
	}
	stats.PausedPlots += paused
	stats.PestsAppeared += len(pests)
	if j.publisher == nil {
		return
	}
	for _, p := range pests {
		j.publisher.PublishWithRetry(ctx, event.NewCropEvent(event.PestsAppeared, event.SourceTick, domain.CropPayloadV1{
			Address:   address,
			PlotID:    p.ID,
			CropID:    p.CropID,
			Timestamp: now,
		}))
	}
}

func hasCrops(f *domain.Farm) bool {
	for i := range f.Plots {
		if f.Plots[i].IsPlanted() {
			return true
		}
	}
	return false
}
