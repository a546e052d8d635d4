// Package store fronts the farm repository with per-player locking and a
// bounded cache of recently used farms. The cache doubles as the set of
// active farms the tick driver advances.
package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/ZetaFarm_Go/internal/concurrency"
	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
	"github.com/osse101/ZetaFarm_Go/internal/repository"
)

// ErrUnchanged is returned by a Mutator that left the farm untouched.
// Update then skips the write and returns the current farm without error.
var ErrUnchanged = errors.New("farm unchanged")

// Mutator edits a farm inside an open transaction. Returning an error other
// than ErrUnchanged aborts the transaction.
type Mutator func(farm *domain.Farm) error

// cachedFarm lets background writers swap the snapshot without resetting the entry's TTL
type cachedFarm struct {
	farm atomic.Pointer[domain.Farm]
}

// Store serializes writes per address and caches farm snapshots
type Store struct {
	repo  repository.Farm
	locks *concurrency.LockManager
	cache *expirable.LRU[string, *cachedFarm]
}

// New creates a store. size bounds the active set; ttl is how long a farm
// stays active after the player last touched it (0 means forever).
func New(repo repository.Farm, size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultCacheSize
	}
	onEvict := func(address string, _ *cachedFarm) {
		logger.Debug(LogMsgFarmInactive, "address", address)
	}
	return &Store{
		repo:  repo,
		locks: concurrency.NewLockManager(),
		cache: expirable.NewLRU[string, *cachedFarm](size, onEvict, ttl),
	}
}

// Get returns a copy of the farm and marks it active
func (s *Store) Get(ctx context.Context, address string) (*domain.Farm, error) {
	if farm, ok := s.touch(address); ok {
		return farm, nil
	}

	// Loading under the lock keeps a concurrent Update from being overwritten by a stale read
	unlock := s.locks.Lock(address)
	defer unlock()
	if farm, ok := s.touch(address); ok {
		return farm, nil
	}

	farm, err := s.repo.GetFarm(ctx, address)
	if err != nil {
		return nil, err
	}
	s.remember(address, farm, true)
	return farm, nil
}

// Create inserts farm unless the address already has one, and returns the
// stored farm either way. The bool reports whether it was newly created.
func (s *Store) Create(ctx context.Context, farm *domain.Farm) (*domain.Farm, bool, error) {
	unlock := s.locks.Lock(farm.Address)
	defer unlock()

	created, err := s.repo.CreateFarm(ctx, farm)
	if err != nil {
		return nil, false, err
	}
	if created {
		s.remember(farm.Address, farm, true)
		return farm.Clone(), true, nil
	}

	existing, err := s.repo.GetFarm(ctx, farm.Address)
	if err != nil {
		return nil, false, err
	}
	s.remember(farm.Address, existing, true)
	return existing, false, nil
}

// Update runs fn under the player's lock inside a transaction and marks the farm active
func (s *Store) Update(ctx context.Context, address string, fn Mutator) (*domain.Farm, error) {
	return s.update(ctx, address, fn, true)
}

// UpdateQuiet is Update for background work: it keeps the cached snapshot
// current but does not extend the farm's time in the active set.
func (s *Store) UpdateQuiet(ctx context.Context, address string, fn Mutator) (*domain.Farm, error) {
	return s.update(ctx, address, fn, false)
}

func (s *Store) update(ctx context.Context, address string, fn Mutator, touch bool) (*domain.Farm, error) {
	unlock := s.locks.Lock(address)
	defer unlock()

	tx, err := s.repo.BeginFarmTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	farm, err := tx.GetFarmForUpdate(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := fn(farm); err != nil {
		if errors.Is(err, ErrUnchanged) {
			s.remember(address, farm, touch)
			return farm.Clone(), nil
		}
		return nil, err
	}

	if err := tx.SaveFarm(ctx, farm); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.remember(address, farm, touch)
	return farm.Clone(), nil
}

// Snapshot returns the cached copy without touching recency or TTL
func (s *Store) Snapshot(address string) (*domain.Farm, bool) {
	entry, ok := s.cache.Peek(address)
	if !ok {
		return nil, false
	}
	return entry.farm.Load().Clone(), true
}

// Active lists the addresses currently in the active set, oldest first
func (s *Store) Active() []string {
	return s.cache.Keys()
}

// Len is the size of the active set
func (s *Store) Len() int {
	return s.cache.Len()
}

// Forget drops a farm from the active set
func (s *Store) Forget(address string) {
	s.cache.Remove(address)
}

func (s *Store) touch(address string) (*domain.Farm, bool) {
	entry, ok := s.cache.Get(address)
	if !ok {
		return nil, false
	}
	// Re-adding refreshes the TTL
	s.cache.Add(address, entry)
	return entry.farm.Load().Clone(), true
}

func (s *Store) remember(address string, farm *domain.Farm, touch bool) {
	snapshot := farm.Clone()
	entry, ok := s.cache.Peek(address)
	if ok {
		entry.farm.Store(snapshot)
		if touch {
			s.cache.Add(address, entry)
		}
		return
	}
	if !touch {
		return
	}
	entry = &cachedFarm{}
	entry.farm.Store(snapshot)
	s.cache.Add(address, entry)
}
