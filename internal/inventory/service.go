// Package inventory is the read side over granted items: aggregation only,
// no mutation. Grants happen inside the roll engine's transaction.
package inventory

import (
	"context"
	"fmt"

	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/logger"
	"github.com/skyaree/rollbox/internal/repository"
)

// Service defines the inventory read interface
type Service interface {
	// ListGrouped returns the player's items aggregated by (name, level),
	// in deterministic order.
	ListGrouped(ctx context.Context, playerID string) ([]domain.GroupedItem, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) ListGrouped(ctx context.Context, playerID string) ([]domain.GroupedItem, error) {
	log := logger.FromContext(ctx)

	items, err := s.repo.ListGrouped(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}

	log.Debug("Inventory listed", "player_id", playerID, "groups", len(items))
	return items, nil
}
