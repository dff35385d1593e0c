package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyaree/rollbox/internal/domain"
)

// InventoryRepository implements the read side over granted items
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListGrouped aggregates the player's items by (name, level).
// The ordering is deterministic for the same underlying data.
func (r *InventoryRepository) ListGrouped(ctx context.Context, playerID string) ([]domain.GroupedItem, error) {
	query := `
		SELECT item_name, item_level, COUNT(*)
		FROM inventory_items
		WHERE player_id = $1
		GROUP BY item_name, item_level
		ORDER BY COUNT(*) DESC, item_name ASC, item_level ASC
	`
	rows, err := r.db.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", translateError(err))
	}
	defer rows.Close()

	var items []domain.GroupedItem
	for rows.Next() {
		var g domain.GroupedItem
		if err := rows.Scan(&g.ItemName, &g.ItemLevel, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan grouped item: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", translateError(err))
	}

	return items, nil
}

// CountByPlayer returns the total number of items the player owns
func (r *InventoryRepository) CountByPlayer(ctx context.Context, playerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items WHERE player_id = $1`, playerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", translateError(err))
	}
	return count, nil
}
