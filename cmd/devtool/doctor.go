package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/database"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (config + db + server)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")
	ctx := context.Background()

	hasError := false

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		PrintError("Configuration invalid: %v", err)
		hasError = true
	} else {
		PrintSuccess("Configuration OK (storage: %s)", cfg.StorageBackend)
	}

	if err := checkDatabase(ctx); err != nil {
		PrintError("Database check failed: %v", err)
		hasError = true
	} else {
		PrintSuccess("Database OK")
	}

	if err := checkHealth(ctx, &http.Client{Timeout: healthTimeout}, defaultBaseURL()); err != nil {
		// The server may simply not be running while developing
		PrintWarning("Server not reachable: %v", err)
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}

func checkDatabase(ctx context.Context) error {
	pool, err := connect(ctx, dbURL(""))
	if err != nil {
		return err
	}
	defer pool.Close()

	version, err := database.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	pending, err := database.HasPendingMigrations(ctx, pool)
	if err != nil {
		return err
	}
	if pending {
		PrintWarning("Schema at version %d has pending migrations, run 'migrate up'", version)
	} else {
		PrintInfo("Schema at version %d", version)
	}
	return nil
}
