package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
	"github.com/osse101/ZetaFarm_Go/internal/repository"
)

const farmColumns = `address, coins, zeta, tickets, exp, fertilizer, plots, inventory, pets,
	checkins, last_checkin, redeemed, robot, last_login, created_at, updated_at`

const (
	selectFarmSQL          = `SELECT ` + farmColumns + ` FROM farms WHERE address = $1`
	selectFarmForUpdateSQL = selectFarmSQL + ` FOR UPDATE`
	listAddressesSQL       = `SELECT address FROM farms ORDER BY address`

	insertFarmSQL = `
		INSERT INTO farms (` + farmColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (address) DO NOTHING`

	updateFarmSQL = `
		UPDATE farms SET
			coins = $2, zeta = $3, tickets = $4, exp = $5, fertilizer = $6,
			plots = $7, inventory = $8, pets = $9, checkins = $10, last_checkin = $11,
			redeemed = $12, robot = $13, last_login = $14, updated_at = $16
		WHERE address = $1 AND created_at = $15`
)

// inventoryColumn groups the item maps stored in the inventory JSONB column
type inventoryColumn struct {
	Seeds   map[string]int64 `json:"seeds"`
	Fruits  map[string]int64 `json:"fruits"`
	Letters map[string]int64 `json:"letters"`
}

type farmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new PostgreSQL farm repository
func NewFarmRepository(db *pgxpool.Pool) repository.Farm {
	return &farmRepository{db: db}
}

// GetFarm loads a farm without taking a row lock
func (r *farmRepository) GetFarm(ctx context.Context, address string) (*domain.Farm, error) {
	farm, err := scanFarm(r.db.QueryRow(ctx, selectFarmSQL, address))
	if err != nil {
		if errors.Is(err, domain.ErrFarmNotFound) {
			return nil, err
		}
		return nil, wrapDBError(ErrMsgFailedToGetFarm, err)
	}
	return farm, nil
}

// CreateFarm inserts the farm unless the address already has one
func (r *farmRepository) CreateFarm(ctx context.Context, farm *domain.Farm) (bool, error) {
	args, err := farmArgs(farm)
	if err != nil {
		return false, err
	}
	tag, err := r.db.Exec(ctx, insertFarmSQL, args...)
	if err != nil {
		return false, wrapDBError(ErrMsgFailedToInsertFarm, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAddresses returns every registered address
func (r *farmRepository) ListAddresses(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, listAddressesSQL)
	if err != nil {
		return nil, wrapDBError(ErrMsgFailedToListAddresses, err)
	}
	addresses, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapDBError(ErrMsgFailedToListAddresses, err)
	}
	return addresses, nil
}

// BeginFarmTx starts a transaction for a read-modify-write of one farm
func (r *farmRepository) BeginFarmTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, wrapDBError(ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{tx: tx}, nil
}

type farmTx struct {
	tx pgx.Tx
}

// GetFarmForUpdate loads the farm and holds its row lock until commit
func (t *farmTx) GetFarmForUpdate(ctx context.Context, address string) (*domain.Farm, error) {
	farm, err := scanFarm(t.tx.QueryRow(ctx, selectFarmForUpdateSQL, address))
	if err != nil {
		if errors.Is(err, domain.ErrFarmNotFound) {
			return nil, err
		}
		return nil, wrapDBError(ErrMsgFailedToGetFarmForUpdate, err)
	}
	return farm, nil
}

// SaveFarm writes every mutable column of the farm
func (t *farmTx) SaveFarm(ctx context.Context, farm *domain.Farm) error {
	return saveFarm(ctx, t.tx, farm)
}

// Commit commits the transaction
func (t *farmTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return err
		}
		return wrapDBError(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback aborts the transaction
func (t *farmTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func saveFarm(ctx context.Context, q querier, farm *domain.Farm) error {
	args, err := farmArgs(farm)
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, updateFarmSQL, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%s: %w: %v", ErrMsgFailedToUpdateFarm, domain.ErrInvalidInput, err)
		}
		return wrapDBError(ErrMsgFailedToUpdateFarm, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrFarmNotFound, farm.Address)
	}
	return nil
}

// farmArgs flattens a farm into the positional arguments shared by insert and update
func farmArgs(farm *domain.Farm) ([]interface{}, error) {
	plots, err := marshalColumn("plots", farm.Plots)
	if err != nil {
		return nil, err
	}
	inventory, err := marshalColumn("inventory", inventoryColumn{
		Seeds:   farm.Seeds,
		Fruits:  farm.Fruits,
		Letters: farm.Letters,
	})
	if err != nil {
		return nil, err
	}
	pets, err := marshalColumn("pets", farm.Pets)
	if err != nil {
		return nil, err
	}
	checkIns, err := marshalColumn("checkins", farm.CheckIns)
	if err != nil {
		return nil, err
	}
	redeemed, err := marshalColumn("redeemed", farm.Redeemed)
	if err != nil {
		return nil, err
	}
	var robot []byte
	if farm.Robot != nil {
		if robot, err = marshalColumn("robot", farm.Robot); err != nil {
			return nil, err
		}
	}

	return []interface{}{
		farm.Address, farm.Coins, farm.Zeta, farm.Tickets, farm.Exp, farm.Fertilizer,
		plots, inventory, pets, checkIns, farm.LastCheckIn, redeemed, robot,
		farm.LastLogin, farm.CreatedAt, farm.UpdatedAt,
	}, nil
}

func scanFarm(row pgx.Row) (*domain.Farm, error) {
	var (
		farm                                       domain.Farm
		coins                                      decimal.Decimal
		plots, inventory, pets, checkIns, redeemed []byte
		robot                                      []byte
	)
	err := row.Scan(
		&farm.Address, &coins, &farm.Zeta, &farm.Tickets, &farm.Exp, &farm.Fertilizer,
		&plots, &inventory, &pets, &checkIns, &farm.LastCheckIn, &redeemed, &robot,
		&farm.LastLogin, &farm.CreatedAt, &farm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFarmNotFound
		}
		return nil, err
	}
	farm.Coins = coins

	var inv inventoryColumn
	if err := unmarshalColumn("plots", plots, &farm.Plots); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("inventory", inventory, &inv); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("pets", pets, &farm.Pets); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("checkins", checkIns, &farm.CheckIns); err != nil {
		return nil, err
	}
	if err := unmarshalColumn("redeemed", redeemed, &farm.Redeemed); err != nil {
		return nil, err
	}
	if len(robot) > 0 {
		farm.Robot = &domain.RobotSubscription{}
		if err := unmarshalColumn("robot", robot, farm.Robot); err != nil {
			return nil, err
		}
	}
	farm.Seeds, farm.Fruits, farm.Letters = inv.Seeds, inv.Fruits, inv.Letters
	farm.Normalize()
	return &farm, nil
}
