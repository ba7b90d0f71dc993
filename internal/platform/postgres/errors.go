package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgreSQL error codes
const (
	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// undefinedTableCode is reported when the schema has not been migrated
	undefinedTableCode = "42P01"
)

// MapError maps a database error from operation op to a store error.
// sql.ErrNoRows becomes store.ErrTaskNotFound, constraint violations become
// store.ErrInvalidEntity and everything else is wrapped in a *store.StoreError
// carrying the provider message.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTaskNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		case undefinedTableCode:
			return store.NewStoreError(op, "tasks table is missing, run migrations", err)
		}
		return store.NewStoreError(op, pgErr.Message, err)
	}

	return store.NewStoreError(op, "database error", err)
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null constraint violation.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// CheckRowsAffected examines the number of rows affected by a conditional
// statement. Zero rows means the existence precondition failed and yields
// store.ErrTaskNotFound.
func CheckRowsAffected(op string, result sql.Result) error {
	if result == nil {
		return store.NewStoreError(op, "nil result", nil)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return store.NewStoreError(op, "failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
