package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/database/postgres"
	"github.com/osse101/ZetaFarm_Go/internal/farm"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/utils"
)

// InspectCommand lists farms or prints one farm as the API would show it
type InspectCommand struct{}

func (c *InspectCommand) Name() string {
	return "inspect"
}

func (c *InspectCommand) Description() string {
	return "List registered farms, or dump one farm as JSON [address]"
}

func (c *InspectCommand) Run(args []string) error {
	ctx := context.Background()
	pool, err := connect(ctx, dbURL(""))
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewFarmRepository(pool)

	if len(args) == 0 {
		addresses, err := repo.ListAddresses(ctx)
		if err != nil {
			return err
		}
		PrintHeader(fmt.Sprintf("%d farms", len(addresses)))
		for _, a := range addresses {
			fmt.Println(a)
		}
		return nil
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	f, err := repo.GetFarm(ctx, args[0])
	if err != nil {
		return err
	}

	view := farm.NewView(f, growth.NewEngine(cat, utils.Rand{}), cat, time.Now().Unix())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
