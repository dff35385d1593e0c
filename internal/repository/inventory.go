package repository

import (
	"context"

	"github.com/skyaree/rollbox/internal/domain"
)

// Inventory defines the read-side interface over granted items.
type Inventory interface {
	// ListGrouped aggregates a player's items by (name, level). Order is
	// deterministic: count descending, then name ascending.
	ListGrouped(ctx context.Context, playerID string) ([]domain.GroupedItem, error)

	// CountByPlayer returns the total number of items a player owns.
	CountByPlayer(ctx context.Context, playerID string) (int, error)
}
