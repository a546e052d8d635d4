package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/ZetaFarm_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Apply embedded migrations or show the schema version (up, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, status")
	}

	ctx := context.Background()
	pool, err := connect(ctx, dbURL(""))
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		PrintHeader("Applying migrations")
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		return printVersion(ctx, pool)
	case "status":
		return printVersion(ctx, pool)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func printVersion(ctx context.Context, pool *pgxpool.Pool) error {
	version, err := database.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	PrintSuccess("Schema version: %d", version)
	return nil
}

// connect opens a small pool for one-off commands
func connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	PrintInfo("Connecting to %s", redactPassword(url))
	return database.NewPool(ctx, url, database.PoolOptions{MaxConns: 2})
}
