package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/checkin"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/gacha"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/letters"
	"github.com/osse101/ZetaFarm_Go/internal/scheduler"
	"github.com/osse101/ZetaFarm_Go/internal/server"
	"github.com/osse101/ZetaFarm_Go/internal/shop"
	"github.com/osse101/ZetaFarm_Go/internal/sse"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
	"github.com/osse101/ZetaFarm_Go/internal/worker"
)

// App is the fully wired game server
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Storage   *Storage
	Store     *store.Store
	Bus       *event.MemoryBus
	Publisher *event.ResilientPublisher
	Stream    *sse.Hub

	Farm     farm.Service
	Shop     shop.Service
	Gacha    gacha.Service
	CheckIn  checkin.Service
	Letters  letters.Service
	EventLog eventlog.Service
	Tick     *farm.TickJob

	Server    *server.Server
	Workers   *worker.Pool
	Scheduler *scheduler.Scheduler
}

// Options overrides the collaborators tests and the simulator pin down
type Options struct {
	Clock clock.Clock
	Rand  utils.Roller
}

// New opens storage and wires every service, job and route. Nothing runs
// until Start.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Rand == nil {
		opts.Rand = utils.Rand{}
	}

	cat, err := LoadCatalog(cfg.CatalogDir)
	if err != nil {
		return nil, err
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	if err != nil {
		storage.Close()
		return nil, err
	}

	eventLog := eventlog.NewService(storage.EventLog)
	if err := RegisterEventHandlers(bus, eventLog); err != nil {
		_ = publisher.Shutdown(ctx)
		storage.Close()
		return nil, err
	}

	stream := sse.NewHub()
	stream.Start()
	sse.NewSubscriber(stream, opts.Clock).Subscribe(bus)

	st := store.New(storage.Farms, cfg.FarmCacheSize, cfg.FarmCacheTTL)
	engine := growth.NewEngine(cat, opts.Rand)

	app := &App{
		Config:    cfg,
		Catalog:   cat,
		Storage:   storage,
		Store:     st,
		Bus:       bus,
		Publisher: publisher,
		Stream:    stream,
		Farm:      farm.NewService(st, cat, engine, opts.Clock, opts.Rand, publisher, cfg.StartingPlots),
		Shop:      shop.NewService(st, cat, opts.Clock, publisher),
		Gacha:     gacha.NewService(st, cat, opts.Clock, opts.Rand, publisher),
		CheckIn:   checkin.NewService(st, cat, opts.Clock, opts.Rand, publisher),
		Letters:   letters.NewService(st, cat, opts.Clock, publisher),
		EventLog:  eventLog,
		Tick:      farm.NewTickJob(st, engine, opts.Clock, publisher, cfg.TickInterval),
	}

	app.Server = server.NewServer(server.Options{
		Port:           cfg.Port,
		Version:        cfg.Version,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimitRequests,
		RateWindow:     cfg.RateLimitWindow,
	}, server.Services{
		Pinger:   storage.Pinger(),
		Farm:     app.Farm,
		Shop:     app.Shop,
		Gacha:    app.Gacha,
		CheckIn:  app.CheckIn,
		Letters:  app.Letters,
		Activity: eventLog,
		Catalog:  cat,
		Stream:   stream,
	})

	return app, nil
}

// StartBackground starts the worker pool and schedules the growth tick and
// the event log cleanup
func (a *App) StartBackground() {
	a.Workers = worker.NewPool(a.Config.WorkerCount, a.Config.WorkerCount*WorkerQueueMultiplier)
	a.Workers.Start()

	a.Scheduler = scheduler.New(a.Workers)
	a.Scheduler.Schedule(a.Config.TickInterval, a.Tick)
	a.Scheduler.Schedule(a.Config.CleanupInterval, eventlog.NewCleanupJob(a.EventLog, a.Config.EventRetentionDays))

	slog.Info(LogMsgSchedulerStarted,
		"tick_interval", a.Config.TickInterval,
		"cleanup_interval", a.Config.CleanupInterval,
		"workers", a.Config.WorkerCount)
}

// Shutdown stops the server, the background jobs and the publisher, then
// closes storage
func (a *App) Shutdown(ctx context.Context) {
	GracefulShutdown(ctx, ShutdownComponents{
		Server:             a.Server,
		Stream:             a.Stream,
		Scheduler:          a.Scheduler,
		Workers:            a.Workers,
		ResilientPublisher: a.Publisher,
		Storage:            a.Storage,
	})
}
