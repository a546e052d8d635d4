package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/database"
	"github.com/osse101/ZetaFarm_Go/internal/database/memory"
	"github.com/osse101/ZetaFarm_Go/internal/database/postgres"
	"github.com/osse101/ZetaFarm_Go/internal/eventlog"
	"github.com/osse101/ZetaFarm_Go/internal/repository"
)

// Storage holds the repositories for the configured backend. Pool is nil
// for the memory backend.
type Storage struct {
	Farms    repository.Farm
	EventLog eventlog.Repository
	Pool     *pgxpool.Pool
}

// OpenStorage connects to the configured backend. For Postgres it also
// applies pending migrations.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		slog.Info(LogMsgStorageReady, "backend", cfg.StorageBackend)
		return &Storage{
			Farms:    memory.NewFarmStore(),
			EventLog: memory.NewEventLogStore(nil),
		}, nil
	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MaxIdle:  cfg.DBMaxConnIdleTime,
			MaxLife:  cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgStorageReady, "backend", cfg.StorageBackend, "host", cfg.DBHost, "db", cfg.DBName)
		return &Storage{
			Farms:    postgres.NewFarmRepository(pool),
			EventLog: postgres.NewEventLogRepository(pool),
			Pool:     pool,
		}, nil
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.StorageBackend)
	}
}

// Pinger returns the readiness dependency, or nil when nothing external
// backs the farms
func (s *Storage) Pinger() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}
