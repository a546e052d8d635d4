package repository

import (
	"context"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// Farm defines the interface for farm data access
type Farm interface {
	// GetFarm loads a farm without locking it. Returns domain.ErrFarmNotFound
	// when the address has never registered.
	GetFarm(ctx context.Context, address string) (*domain.Farm, error)

	// CreateFarm inserts a new farm. It reports false without error when the
	// address already has one.
	CreateFarm(ctx context.Context, farm *domain.Farm) (bool, error)

	// ListAddresses returns every registered address in ascending order
	ListAddresses(ctx context.Context) ([]string, error)

	// Transaction support
	BeginFarmTx(ctx context.Context) (FarmTx, error)
}

// FarmTx extends Tx with row-locked farm reads and writes
type FarmTx interface {
	Tx // Commit, Rollback

	GetFarmForUpdate(ctx context.Context, address string) (*domain.Farm, error)
	SaveFarm(ctx context.Context, farm *domain.Farm) error
}
