package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/database"
)

// maintenanceDB is the database connected to while creating or dropping the app database
const maintenanceDB = "postgres"

// CreateDBCommand creates the database when missing and migrates it
type CreateDBCommand struct{}

func (c *CreateDBCommand) Name() string {
	return "db-create"
}

func (c *CreateDBCommand) Description() string {
	return "Create the database if it does not exist and apply migrations"
}

func (c *CreateDBCommand) Run(args []string) error {
	ctx := context.Background()
	name := getEnv("DB_NAME", config.DefaultDBName)

	PrintHeader("Creating database " + name)
	conn, err := pgx.Connect(ctx, dbURL(maintenanceDB))
	if err != nil {
		return fmt.Errorf("unable to connect to %s database: %w", maintenanceDB, err)
	}
	defer conn.Close(ctx)

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		PrintInfo("Database %s already exists", name)
	} else {
		if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{name}.Sanitize()); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		PrintSuccess("Database %s created", name)
	}

	return migrateDB(ctx)
}

// ResetDBCommand drops and recreates the database, then migrates it
type ResetDBCommand struct{}

func (c *ResetDBCommand) Name() string {
	return "db-reset"
}

func (c *ResetDBCommand) Description() string {
	return "Drop and recreate the database (asks for confirmation, --yes skips it)"
}

func (c *ResetDBCommand) Run(args []string) error {
	ctx := context.Background()
	name := getEnv("DB_NAME", config.DefaultDBName)

	if !(len(args) > 0 && args[0] == "--yes") && !confirm(fmt.Sprintf("This deletes every farm in %s. Type '%s' to continue: ", name, confirmYes)) {
		PrintWarning("Aborted")
		return nil
	}

	conn, err := pgx.Connect(ctx, dbURL(maintenanceDB))
	if err != nil {
		return fmt.Errorf("unable to connect to %s database: %w", maintenanceDB, err)
	}
	defer conn.Close(ctx)

	PrintInfo("Terminating existing connections to %s...", name)
	if _, err := conn.Exec(ctx, `
		SELECT pg_terminate_backend(pid)
		FROM pg_stat_activity
		WHERE datname = $1 AND pid <> pg_backend_pid()`, name); err != nil {
		PrintWarning("Failed to terminate connections: %v", err)
	}

	ident := pgx.Identifier{name}.Sanitize()
	if _, err := conn.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("failed to drop database: %w", err)
	}
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	PrintSuccess("Database %s recreated", name)

	return migrateDB(ctx)
}

func migrateDB(ctx context.Context) error {
	pool, err := connect(ctx, dbURL(""))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	return printVersion(ctx, pool)
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == confirmYes
}
