package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skyaree/rollbox/internal/domain"
)

// Postgres error codes that signal a concurrency-control retry.
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

// translateError maps driver errors onto domain sentinels. Serialization
// failures and deadlocks become domain.ErrConcurrentConflict so services can
// retry transparently; everything else keeps the original error wrapped under
// domain.ErrDatabaseError.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgCodeSerializationFailure, pgCodeDeadlockDetected:
			return fmt.Errorf("%w: %s", domain.ErrConcurrentConflict, pgErr.Code)
		}
		return fmt.Errorf("%w: %s", domain.ErrDatabaseError, pgErr.Message)
	}
	return err
}
