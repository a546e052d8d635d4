// Package memory holds in-process repositories used by the simulator and
// by tests that do not need Postgres.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/repository"
)

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

// FarmStore keeps farms in a map. Values are cloned on the way in and out so
// callers never share memory with the store.
type FarmStore struct {
	mu    sync.RWMutex
	farms map[string]*domain.Farm
	locks map[string]*sync.Mutex
}

// NewFarmStore creates an empty store
func NewFarmStore() *FarmStore {
	return &FarmStore{
		farms: make(map[string]*domain.Farm),
		locks: make(map[string]*sync.Mutex),
	}
}

var _ repository.Farm = (*FarmStore)(nil)

// GetFarm returns a copy of the stored farm
func (s *FarmStore) GetFarm(_ context.Context, address string) (*domain.Farm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	farm, ok := s.farms[address]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	return farm.Clone(), nil
}

// CreateFarm stores the farm unless the address is taken
func (s *FarmStore) CreateFarm(_ context.Context, farm *domain.Farm) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.farms[farm.Address]; ok {
		return false, nil
	}
	s.farms[farm.Address] = farm.Clone()
	return true, nil
}

// ListAddresses returns every stored address in ascending order
func (s *FarmStore) ListAddresses(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.farms))
	for addr := range s.farms {
		out = append(out, addr)
	}
	sort.Strings(out)
	return out, nil
}

// BeginFarmTx starts a transaction. Writes are staged and become visible on Commit.
func (s *FarmStore) BeginFarmTx(_ context.Context) (repository.FarmTx, error) {
	return &farmTx{
		store:  s,
		staged: make(map[string]*domain.Farm),
		locked: make(map[string]*sync.Mutex),
	}, nil
}

// rowLock mimics SELECT ... FOR UPDATE: one holder per address until commit or rollback
func (s *FarmStore) rowLock(address string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[address]
	if !ok {
		l = &sync.Mutex{}
		s.locks[address] = l
	}
	return l
}

type farmTx struct {
	store  *FarmStore
	staged map[string]*domain.Farm
	locked map[string]*sync.Mutex
	closed bool
}

func (t *farmTx) GetFarmForUpdate(ctx context.Context, address string) (*domain.Farm, error) {
	if t.closed {
		return nil, errTxClosed
	}
	if staged, ok := t.staged[address]; ok {
		return staged.Clone(), nil
	}
	if _, ok := t.locked[address]; !ok {
		l := t.store.rowLock(address)
		l.Lock()
		t.locked[address] = l
	}
	return t.store.GetFarm(ctx, address)
}

func (t *farmTx) SaveFarm(_ context.Context, farm *domain.Farm) error {
	if t.closed {
		return errTxClosed
	}
	t.store.mu.RLock()
	_, exists := t.store.farms[farm.Address]
	t.store.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrFarmNotFound, farm.Address)
	}
	if farm.Coins.IsNegative() || farm.Fertilizer < 0 {
		return fmt.Errorf("%w: negative balance for %s", domain.ErrInvalidInput, farm.Address)
	}
	t.staged[farm.Address] = farm.Clone()
	return nil
}

func (t *farmTx) Commit(_ context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.store.mu.Lock()
	for addr, farm := range t.staged {
		t.store.farms[addr] = farm
	}
	t.store.mu.Unlock()
	t.release()
	return nil
}

func (t *farmTx) Rollback(_ context.Context) error {
	if t.closed {
		return errTxClosed
	}
	t.release()
	return nil
}

func (t *farmTx) release() {
	t.closed = true
	t.staged = nil
	for _, l := range t.locked {
		l.Unlock()
	}
	t.locked = nil
}
