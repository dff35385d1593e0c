package repository

import (
	"context"

	"github.com/skyaree/rollbox/internal/domain"
)

// Player defines the interface for player persistence. It is the only path
// through which balances are read or mutated.
type Player interface {
	// GetOrCreate returns the player for the external ID, creating one with
	// the starting balance on first reference. Safe under concurrent
	// first-access: at most one row is ever created per external ID.
	GetOrCreate(ctx context.Context, externalID string, startingBalance int) (*domain.Player, error)

	// GetByExternalID returns the player, or domain.ErrPlayerNotFound.
	GetByExternalID(ctx context.Context, externalID string) (*domain.Player, error)

	// Debit atomically checks balance >= amount and decrements, returning the
	// new balance. Returns domain.ErrInsufficientFunds without mutating when
	// the check fails. The check-and-decrement is a single atomic unit with
	// respect to concurrent debits on the same player.
	Debit(ctx context.Context, playerID string, amount int) (int, error)

	// Credit atomically increments the balance and returns the new balance.
	Credit(ctx context.Context, playerID string, amount int) (int, error)

	BeginTx(ctx context.Context) (PlayerTx, error)
}

// PlayerTx is a transaction scope over a player's balance and inventory.
// Debit and AddInventoryItem calls made through it commit or roll back as a
// single unit.
type PlayerTx interface {
	Debit(ctx context.Context, playerID string, amount int) (int, error)
	AddInventoryItem(ctx context.Context, playerID, itemName string, itemLevel int) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
