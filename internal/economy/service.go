// Package economy is the facade external callers interact with. It composes
// the ledger, roll engine and inventory store into the three player-facing
// operations and owns get-or-create semantics: every operation first resolves
// the player, creating them lazily on first reference.
package economy

import (
	"context"
	"fmt"

	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/inventory"
	"github.com/skyaree/rollbox/internal/ledger"
	"github.com/skyaree/rollbox/internal/logger"
	"github.com/skyaree/rollbox/internal/metrics"
	"github.com/skyaree/rollbox/internal/roll"
)

// StatusResult is the player-facing balance view.
type StatusResult struct {
	PlayerID string `json:"player_id"`
	Balance  int    `json:"balance"`
}

// InventoryEntry is one aggregated inventory line for display.
type InventoryEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// InventoryResult is the player-facing inventory view.
type InventoryResult struct {
	PlayerID string           `json:"player_id"`
	Balance  int              `json:"balance"`
	Items    []InventoryEntry `json:"inventory"`
}

// Service defines the economy facade interface
type Service interface {
	Status(ctx context.Context, externalID string) (*StatusResult, error)
	Roll(ctx context.Context, externalID string) (*roll.Result, error)
	Inventory(ctx context.Context, externalID string) (*InventoryResult, error)
	Credit(ctx context.Context, externalID string, amount int) (int, error)
}

type service struct {
	ledger    ledger.Service
	roller    roll.Service
	inventory inventory.Service
	cache     *identityCache
}

// NewService creates a new economy facade
func NewService(ledgerSvc ledger.Service, rollSvc roll.Service, inventorySvc inventory.Service) Service {
	return &service{
		ledger:    ledgerSvc,
		roller:    rollSvc,
		inventory: inventorySvc,
		cache:     newIdentityCache(IdentityCacheSize, IdentityCacheTTL),
	}
}

func (s *service) Status(ctx context.Context, externalID string) (*StatusResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgStatusCalled, "external_id", externalID)

	player, err := s.ledger.GetOrCreate(ctx, externalID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(externalID, player.ID)

	return &StatusResult{PlayerID: externalID, Balance: player.Balance}, nil
}

func (s *service) Roll(ctx context.Context, externalID string) (*roll.Result, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRollCalled, "external_id", externalID)

	playerID, err := s.resolvePlayer(ctx, externalID)
	if err != nil {
		return nil, err
	}

	return s.roller.Roll(ctx, playerID)
}

func (s *service) Inventory(ctx context.Context, externalID string) (*InventoryResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgInventoryCalled, "external_id", externalID)

	// Balance must be read fresh; only the identity mapping is cacheable.
	player, err := s.ledger.GetOrCreate(ctx, externalID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(externalID, player.ID)

	grouped, err := s.inventory.ListGrouped(ctx, player.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]InventoryEntry, 0, len(grouped))
	for _, g := range grouped {
		entries = append(entries, InventoryEntry{Name: g.DisplayKey(), Count: g.Count})
	}

	return &InventoryResult{PlayerID: externalID, Balance: player.Balance, Items: entries}, nil
}

func (s *service) Credit(ctx context.Context, externalID string, amount int) (int, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreditCalled, "external_id", externalID, "amount", amount)

	playerID, err := s.resolvePlayer(ctx, externalID)
	if err != nil {
		return 0, err
	}

	balance, err := s.ledger.Credit(ctx, playerID, amount)
	if err != nil {
		return 0, err
	}

	metrics.CurrencyCredited.Add(float64(amount))
	return balance, nil
}

// resolvePlayer maps an external ID to the internal player ID, creating the
// player on first reference. Known mappings are served from the LRU cache.
func (s *service) resolvePlayer(ctx context.Context, externalID string) (string, error) {
	if id, ok := s.cache.Get(externalID); ok {
		return id, nil
	}

	player, err := s.ledger.GetOrCreate(ctx, externalID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve player: %w", err)
	}
	if player == nil {
		return "", domain.ErrPlayerNotFound
	}

	s.cache.Set(externalID, player.ID)
	return player.ID, nil
}
