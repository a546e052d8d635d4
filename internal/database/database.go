package database

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// PoolOptions tunes the connection pool
type PoolOptions struct {
	MaxConns int
	MaxIdle  time.Duration
	MaxLife  time.Duration
}

// NewPool creates a new PostgreSQL connection pool and verifies it can reach the server
func NewPool(ctx context.Context, connString string, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	maxConns := opts.MaxConns
	if maxConns <= 0 {
		maxConns = DefaultMaxConnections
	}
	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = DefaultMinConnections
	if config.MinConns > config.MaxConns {
		config.MinConns = config.MaxConns
	}
	if opts.MaxLife > 0 {
		config.MaxConnLifetime = opts.MaxLife
	}
	if opts.MaxIdle > 0 {
		config.MaxConnIdleTime = opts.MaxIdle
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase, "max_conns", maxConns)
	return pool, nil
}

// ConnString builds a postgres URL from its parts
func ConnString(user, password, host, port, name, sslMode string) string {
	if sslMode == "" {
		sslMode = DefaultSSLMode
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, name, sslMode)
}
