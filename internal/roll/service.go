// Package roll executes roll transactions: debit the fixed cost, draw a
// random value, select an item from the weighted catalog, and grant it —
// all as a single atomic unit against durable storage.
package roll

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/skyaree/rollbox/internal/catalog"
	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/logger"
	"github.com/skyaree/rollbox/internal/metrics"
	"github.com/skyaree/rollbox/internal/repository"
)

// Result is the outcome of a successful roll.
type Result struct {
	ItemName   string `json:"item"`
	NewBalance int    `json:"balance"`
}

// Service defines the roll engine interface
type Service interface {
	// Roll performs one paid roll for the player. On success exactly one
	// inventory item exists and the balance has decreased by exactly Cost;
	// on domain.ErrInsufficientFunds state is unchanged.
	Roll(ctx context.Context, playerID string) (*Result, error)
}

type service struct {
	repo repository.Player
	cat  *catalog.Catalog
	rnd  func() float64 // uniform in [0,1); injectable for tests
}

// NewService creates a new roll engine over the given catalog.
func NewService(repo repository.Player, cat *catalog.Catalog) Service {
	return &service{
		repo: repo,
		cat:  cat,
		rnd:  rand.Float64,
	}
}

// NewServiceWithRand creates a roll engine with an injected random source.
func NewServiceWithRand(repo repository.Player, cat *catalog.Catalog, rnd func() float64) Service {
	return &service{repo: repo, cat: cat, rnd: rnd}
}

func (s *service) Roll(ctx context.Context, playerID string) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRollCalled, "player_id", playerID)

	var result *Result
	var err error
	for attempt := 0; ; attempt++ {
		result, err = s.rollOnce(ctx, playerID)
		if err == nil || !errors.Is(err, domain.ErrConcurrentConflict) {
			break
		}
		if attempt >= maxConflictRetries {
			return nil, fmt.Errorf("roll aborted after %d conflict retries: %w", attempt, err)
		}
		log.Warn(LogMsgConflictRetried, "player_id", playerID, "attempt", attempt+1)
	}
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientFunds) {
			log.Info(LogMsgInsufficientRoll, "player_id", playerID)
			metrics.RollsInsufficientFunds.Inc()
		}
		return nil, err
	}

	log.Info(LogMsgItemGranted, "player_id", playerID, "item", result.ItemName, "balance", result.NewBalance)
	metrics.RollsTotal.Inc()
	metrics.ItemsGranted.WithLabelValues(result.ItemName).Inc()
	metrics.CurrencySpent.Add(Cost)
	return result, nil
}

// rollOnce runs debit, selection and grant inside one transaction. If the
// grant fails after a successful debit the rollback restores the balance, so
// no currency is destroyed without a corresponding grant.
func (s *service) rollOnce(ctx context.Context, playerID string) (*Result, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	newBalance, err := tx.Debit(ctx, playerID, Cost)
	if err != nil {
		return nil, err
	}

	draw := s.rnd()
	itemName, ok := Select(s.cat.Entries(), draw)
	if !ok {
		// Unreachable for a validated catalog; treated as a configuration
		// fault rather than a silent no-grant.
		return nil, fmt.Errorf("%w: no item selected for draw %v", domain.ErrCatalogMisconfigured, draw)
	}

	if err := tx.AddInventoryItem(ctx, playerID, itemName, GrantLevel); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	return &Result{ItemName: itemName, NewBalance: newBalance}, nil
}
