package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/database/postgres"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

const (
	defaultSeedFarms = 5
	demoCoins        = 500
	demoSeedsPerCrop = 5
	demoFertilizer   = 3
	demoTickets      = 10
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Create demo farms with coins and seeds [count]"
}

func (c *SeedCommand) Run(args []string) error {
	count := defaultSeedFarms
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("count must be a positive integer, got %q", args[0])
		}
		count = n
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := connect(ctx, dbURL(""))
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader(fmt.Sprintf("Seeding %d demo farms", count))
	repo := postgres.NewFarmRepository(pool)
	now := time.Now().Unix()

	created := 0
	for _, farm := range demoFarms(cat, count, now) {
		ok, err := repo.CreateFarm(ctx, farm)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", farm.Address, err)
		}
		if !ok {
			PrintInfo("%s already exists, skipped", farm.Address)
			continue
		}
		created++
	}

	PrintSuccess("Created %d farms", created)
	return nil
}

// demoFarms builds count well-stocked farms with stable addresses
func demoFarms(cat *catalog.Catalog, count int, now int64) []*domain.Farm {
	farms := make([]*domain.Farm, 0, count)
	for i := 1; i <= count; i++ {
		farm := domain.NewFarm(demoAddress(i), config.DefaultStartingPlots, now)
		farm.Coins = decimal.NewFromInt(demoCoins)
		farm.Fertilizer = demoFertilizer
		farm.Tickets = demoTickets
		for _, crop := range cat.Crops() {
			farm.Seeds[crop.ID] += demoSeedsPerCrop
		}
		farms = append(farms, farm)
	}
	return farms
}

// demoAddress returns a valid 0x address ending in the farm number
func demoAddress(i int) string {
	return fmt.Sprintf("0x%040x", i)
}
