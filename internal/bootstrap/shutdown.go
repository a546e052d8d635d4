package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/ZetaFarm_Go/internal/event"
	"github.com/osse101/ZetaFarm_Go/internal/scheduler"
	"github.com/osse101/ZetaFarm_Go/internal/server"
	"github.com/osse101/ZetaFarm_Go/internal/sse"
	"github.com/osse101/ZetaFarm_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Stream             *sse.Hub
	Scheduler          *scheduler.Scheduler
	Workers            *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown stops components in dependency order:
// 1. Event streams, then the HTTP server (stop accepting new requests)
// 2. Scheduler then workers (no tick starts after this)
// 3. Event publisher (flush pending retries)
// 4. Storage
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	// Open streams would otherwise hold Server.Stop until ctx expires
	if c.Stream != nil {
		c.Stream.Stop()
	}
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgStoppingScheduler)
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Workers != nil {
		c.Workers.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Storage != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
