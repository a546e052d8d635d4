package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/ZetaFarm_Go/internal/database/schema"
)

// Migrate applies every pending embedded goose migration
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	provider, closeDB, err := newProvider(pool)
	if err != nil {
		return err
	}
	defer closeDB()

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	for _, r := range results {
		slog.Default().Info(LogMsgMigrationApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

// MigrationVersion reports the highest applied migration version
func MigrationVersion(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	provider, closeDB, err := newProvider(pool)
	if err != nil {
		return 0, err
	}
	defer closeDB()

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return version, nil
}

// HasPendingMigrations reports whether embedded migrations remain unapplied
func HasPendingMigrations(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	provider, closeDB, err := newProvider(pool)
	if err != nil {
		return false, err
	}
	defer closeDB()

	pending, err := provider.HasPending(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return pending, nil
}

func newProvider(pool *pgxpool.Pool) (*goose.Provider, func(), error) {
	migrations, err := fs.Sub(schema.Migrations, schema.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}
	return provider, func() { _ = db.Close() }, nil
}
