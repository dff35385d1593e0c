package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/repository"
)

// PlayerRepository implements the player repository for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// GetOrCreate returns the player for the external ID, inserting a new row
// with the starting balance on first reference. The unique constraint on
// external_id makes concurrent first-access converge on a single row: the
// loser of the insert race falls through to the read.
func (r *PlayerRepository) GetOrCreate(ctx context.Context, externalID string, startingBalance int) (*domain.Player, error) {
	query := `
		INSERT INTO players (external_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING player_id, external_id, balance, created_at, updated_at
	`
	var p domain.Player
	err := r.db.QueryRow(ctx, query, externalID, startingBalance).
		Scan(&p.ID, &p.ExternalID, &p.Balance, &p.CreatedAt, &p.UpdatedAt)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to create player: %w", translateError(err))
	}

	// Row already existed; the conflict clause suppressed RETURNING.
	return r.GetByExternalID(ctx, externalID)
}

// GetByExternalID finds a player by their external identifier
func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Player, error) {
	query := `
		SELECT player_id, external_id, balance, created_at, updated_at
		FROM players
		WHERE external_id = $1
	`
	var p domain.Player
	err := r.db.QueryRow(ctx, query, externalID).
		Scan(&p.ID, &p.ExternalID, &p.Balance, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", translateError(err))
	}
	return &p, nil
}

// Debit performs the atomic check-and-decrement against the pool.
func (r *PlayerRepository) Debit(ctx context.Context, playerID string, amount int) (int, error) {
	return debit(ctx, r.db, playerID, amount)
}

// Credit atomically increments the balance.
func (r *PlayerRepository) Credit(ctx context.Context, playerID string, amount int) (int, error) {
	query := `
		UPDATE players
		SET balance = balance + $2, updated_at = NOW()
		WHERE player_id = $1
		RETURNING balance
	`
	var balance int
	err := r.db.QueryRow(ctx, query, playerID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("failed to credit player: %w", translateError(err))
	}
	return balance, nil
}

// BeginTx starts a new transaction scoped to a player's balance and inventory
func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}
	return &PlayerTx{tx: tx}, nil
}

// PlayerTx implements repository.PlayerTx
type PlayerTx struct {
	tx pgx.Tx
}

// Debit performs the atomic check-and-decrement inside the transaction.
func (t *PlayerTx) Debit(ctx context.Context, playerID string, amount int) (int, error) {
	return debit(ctx, t.tx, playerID, amount)
}

// AddInventoryItem inserts one granted item inside the transaction.
func (t *PlayerTx) AddInventoryItem(ctx context.Context, playerID, itemName string, itemLevel int) error {
	query := `
		INSERT INTO inventory_items (player_id, item_name, item_level)
		VALUES ($1, $2, $3)
	`
	if _, err := t.tx.Exec(ctx, query, playerID, itemName, itemLevel); err != nil {
		return fmt.Errorf("failed to add inventory item: %w", translateError(err))
	}
	return nil
}

// Commit commits the transaction
func (t *PlayerTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *PlayerTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// queryRower covers both pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// debit is the single atomic unit the whole system's correctness rests on:
// the conditional UPDATE checks and decrements in one statement, so
// concurrent debits on the same row serialize on the row lock and a stale
// read can never produce a double-spend.
func debit(ctx context.Context, q queryRower, playerID string, amount int) (int, error) {
	query := `
		UPDATE players
		SET balance = balance - $2, updated_at = NOW()
		WHERE player_id = $1 AND balance >= $2
		RETURNING balance
	`
	var balance int
	err := q.QueryRow(ctx, query, playerID, amount).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to debit player: %w", translateError(err))
	}

	// No row matched: either the player does not exist or the balance check
	// failed. Distinguish with a follow-up read.
	var current int
	err = q.QueryRow(ctx, `SELECT balance FROM players WHERE player_id = $1`, playerID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("failed to read balance: %w", translateError(err))
	}
	return 0, fmt.Errorf("%w: balance %d, need %d", domain.ErrInsufficientFunds, current, amount)
}
