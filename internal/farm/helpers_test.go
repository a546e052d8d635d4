package farm

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ZetaFarm_Go/internal/catalog"
	"github.com/osse101/ZetaFarm_Go/internal/clock"
	"github.com/osse101/ZetaFarm_Go/internal/database/memory"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/growth"
	"github.com/osse101/ZetaFarm_Go/internal/store"
	"github.com/osse101/ZetaFarm_Go/internal/testing/eventtest"
)

const (
	testAddress = "0xfarmer"
	testStart   = int64(1_700_000_000)
)

// fixedRoller always rolls the same values. Radish water triggers land on n % 75.
type fixedRoller struct {
	f float64
	n int64
}

func (r fixedRoller) Float64() float64     { return r.f }
func (r fixedRoller) Int63n(n int64) int64 { return r.n % n }

var (
	// unlucky never rolls pests, weeds or letters
	unlucky = fixedRoller{f: 0.9, n: 10}
	// lucky always drops a letter but stays under the pest and weed odds
	lucky = fixedRoller{f: 0.1, n: 10}
)

type harness struct {
	svc     Service
	store   *store.Store
	repo    *memory.FarmStore
	clock   *clock.Mock
	events  *eventtest.Recorder
	engine  *growth.Engine
	catalog *catalog.Catalog
	tick    *TickJob
}

func newHarness(t *testing.T, rng fixedRoller, opts ...growth.Option) *harness {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	repo := memory.NewFarmStore()
	st := store.New(repo, 100, time.Hour)
	clk := clock.NewMock(testStart)
	rec := eventtest.NewRecorder()
	engine := growth.NewEngine(cat, rng, opts...)

	return &harness{
		svc:     NewService(st, cat, engine, clk, rng, rec, domain.DefaultStartingPlots),
		store:   st,
		repo:    repo,
		clock:   clk,
		events:  rec,
		engine:  engine,
		catalog: cat,
		tick:    NewTickJob(st, engine, clk, rec, time.Second),
	}
}

// seed stores a fresh farm edited by mutate and marks it active
func (h *harness) seed(t *testing.T, mutate func(f *domain.Farm)) {
	t.Helper()
	f := domain.NewFarm(testAddress, domain.DefaultStartingPlots, h.clock.Now())
	if mutate != nil {
		mutate(f)
	}
	_, created, err := h.store.Create(context.Background(), f)
	require.NoError(t, err)
	require.True(t, created)
}

// stored reads the farm straight from the repository
func (h *harness) stored(t *testing.T) *domain.Farm {
	t.Helper()
	f, err := h.repo.GetFarm(context.Background(), testAddress)
	require.NoError(t, err)
	return f
}

func rich(f *domain.Farm) {
	f.Coins = decimal.NewFromInt(100000)
	f.Seeds["radish"] = 10
	f.Fertilizer = 5
}
