// Command simulate plays scripted farmers against the in-memory backend on a
// mock clock and writes a JSON report of how their farms developed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/bootstrap"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// simulationStart is midnight UTC, 2023-11-15
const simulationStart = 1_700_006_400

func main() {
	var opts simOptions
	flag.IntVar(&opts.Farms, "farms", 3, "number of simulated players")
	flag.DurationVar(&opts.Duration, "duration", 24*time.Hour, "game time to simulate")
	flag.DurationVar(&opts.Visit, "visit", 15*time.Minute, "how often each player tends the farm")
	flag.Int64Var(&opts.Seed, "seed", 1, "random seed")
	out := flag.String("out", "simulation.json", "report path")
	level := flag.String("log-level", logger.LogLevelWarn, "log level")
	flag.Parse()

	logger.InitLoggerWithWriter(logger.NewConfig(*level, logger.LogFormatText, logger.DefaultServiceName, logger.DefaultVersion, logger.EnvironmentDev, false), os.Stderr)

	report, err := simulate(context.Background(), opts)
	if err != nil {
		slog.Error("Simulation failed", "error", err)
		os.Exit(1)
	}
	if err := utils.WriteJSONFile(*out, report); err != nil {
		slog.Error("Failed to write report", "error", err)
		os.Exit(1)
	}
	fmt.Printf("simulated %s for %d farms, report written to %s\n", opts.Duration, opts.Farms, *out)
}

type simOptions struct {
	Farms    int
	Duration time.Duration
	Visit    time.Duration
	Seed     int64
	WorkDir  string
}

// simConfig is a memory-backed configuration with the production tick
func simConfig(workDir string) *config.Config {
	return &config.Config{
		Environment:         logger.EnvironmentTest,
		StorageBackend:      config.StorageMemory,
		TickInterval:        config.DefaultTickInterval,
		WorkerCount:         1,
		FarmCacheSize:       config.DefaultFarmCacheSize,
		FarmCacheTTL:        config.DefaultFarmCacheTTL,
		StartingPlots:       config.DefaultStartingPlots,
		EventMaxRetries:     config.DefaultEventMaxRetries,
		EventRetryDelay:     config.DefaultEventRetryDelay,
		EventDeadLetterPath: filepath.Join(workDir, "deadletter.jsonl"),
		EventRetentionDays:  config.DefaultEventRetention,
		RateLimitRequests:   config.DefaultRateLimitRequests,
		RateLimitWindow:     config.DefaultRateLimitWindow,
	}
}

// simulate advances a mock clock one tick at a time, running the growth
// tick every step and letting each player act every Visit
func simulate(ctx context.Context, opts simOptions) (*Report, error) {
	if opts.WorkDir == "" {
		dir, err := os.MkdirTemp("", "zetafarm-sim-")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
		opts.WorkDir = dir
	}

	cfg := simConfig(opts.WorkDir)
	clk := clock.NewMock(simulationStart)
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Clock: clk,
		Rand:  rand.New(rand.NewSource(opts.Seed)), //nolint:gosec // Reproducible simulation
	})
	if err != nil {
		return nil, err
	}
	defer app.Shutdown(ctx)

	players := make([]*player, opts.Farms)
	for i := range players {
		players[i] = newPlayer(app, fmt.Sprintf("sim-%03d", i))
		if err := players[i].join(ctx); err != nil {
			return nil, err
		}
	}

	step := int64(cfg.TickInterval / time.Second)
	visit := int64(opts.Visit / time.Second)
	end := simulationStart + int64(opts.Duration/time.Second)
	report := &Report{Seed: opts.Seed, Duration: opts.Duration.String(), Farms: opts.Farms}

	for now := clk.Now(); now < end; now = clk.Advance(step) {
		stats := app.Tick.Run(ctx)
		report.Ticks++
		report.PausedPlotTicks += int64(stats.PausedPlots)

		if (now-simulationStart)%visit != 0 {
			continue
		}
		for _, p := range players {
			p.tend(ctx)
		}
		if (now-simulationStart)%3600 == 0 {
			report.snapshot(ctx, app, players, now)
		}
	}

	for _, p := range players {
		final, err := app.Farm.GetFarm(ctx, p.address)
		if err != nil {
			return nil, err
		}
		report.Players = append(report.Players, PlayerReport{
			Address:    p.address,
			Actions:    p.actions,
			Rejections: p.rejections,
			Final:      final,
		})
	}
	return report, nil
}
