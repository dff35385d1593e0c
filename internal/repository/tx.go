package repository

import (
	"context"

	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/logger"
)

// rollbacker is the subset of PlayerTx needed for deferred cleanup.
type rollbacker interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error.
// Use in defer after BeginTx; rolling back a committed transaction is a no-op.
func SafeRollback(ctx context.Context, tx rollbacker) {
	if err := tx.Rollback(ctx); err != nil {
		// Check for common "closed" errors to avoid noise
		if err.Error() != domain.ErrMsgTxClosed {
			logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
		}
	}
}
