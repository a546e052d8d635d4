package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/ZetaFarm_Go/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isConstraintViolation reports whether err is a CHECK or UNIQUE failure
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == PgErrorCodeCheckViolation || pgErr.Code == PgErrorCodeUniqueViolation
	}
	return false
}

// marshalColumn encodes a JSONB column value
func marshalColumn(column string, v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", ErrMsgFailedToMarshalFarm, column, err)
	}
	return data, nil
}

// unmarshalColumn decodes a JSONB column value. Empty input leaves v untouched.
func unmarshalColumn(column string, data []byte, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s %s: %w", ErrMsgFailedToUnmarshalFarm, column, err)
	}
	return nil
}

// wrapDBError attaches domain.ErrDatabaseError so handlers can map faults uniformly
func wrapDBError(msg string, err error) error {
	return fmt.Errorf("%s: %w: %w", msg, domain.ErrDatabaseError, err)
}
