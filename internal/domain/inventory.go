package domain

import (
	"fmt"
	"time"
)

// InventoryItem is one granted item. Records are append-only: exactly one is
// created per successful roll and it is immutable afterwards. Leveling is
// modeled but unused; every grant starts at level 1.
type InventoryItem struct {
	ID        int64     `json:"id"`
	PlayerID  string    `json:"player_id"`
	ItemName  string    `json:"item_name"`
	ItemLevel int       `json:"item_level"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// GroupedItem is the read-side aggregation of inventory items sharing the
// same (name, level) pair.
type GroupedItem struct {
	ItemName  string `json:"name"`
	ItemLevel int    `json:"level"`
	Count     int    `json:"count"`
}

// DisplayKey combines item name and level into the user-facing label.
func (g GroupedItem) DisplayKey() string {
	return fmt.Sprintf("%s (lvl %d)", g.ItemName, g.ItemLevel)
}
