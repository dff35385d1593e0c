// Package ledger owns balance policy: the starting balance for new players
// and validation of credit amounts. The atomic balance mutations themselves
// live at the repository layer, where debit and item grant share one
// transaction.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/logger"
	"github.com/skyaree/rollbox/internal/metrics"
	"github.com/skyaree/rollbox/internal/repository"
)

// Service defines the interface for balance operations
type Service interface {
	// GetOrCreate returns the player for the external ID, creating one with
	// StartingBalance on first reference.
	GetOrCreate(ctx context.Context, externalID string) (*domain.Player, error)

	// Credit atomically increments the balance and returns the new balance.
	Credit(ctx context.Context, playerID string, amount int) (int, error)
}

type service struct {
	repo repository.Player
}

// NewService creates a new ledger service
func NewService(repo repository.Player) Service {
	return &service{repo: repo}
}

func (s *service) GetOrCreate(ctx context.Context, externalID string) (*domain.Player, error) {
	log := logger.FromContext(ctx)

	if externalID == "" {
		return nil, fmt.Errorf("%w: empty player id", domain.ErrInvalidInput)
	}

	player, err := s.repo.GetByExternalID(ctx, externalID)
	if err == nil {
		return player, nil
	}
	if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	player, err = s.repo.GetOrCreate(ctx, externalID, StartingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info(LogMsgPlayerCreated, "external_id", externalID, "balance", player.Balance)
	metrics.PlayersCreated.Inc()
	return player, nil
}

func (s *service) Credit(ctx context.Context, playerID string, amount int) (int, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return 0, fmt.Errorf("%w: credit amount must be positive", domain.ErrInvalidInput)
	}

	balance, err := s.repo.Credit(ctx, playerID, amount)
	if err != nil {
		return 0, err
	}

	log.Info(LogMsgCreditApplied, "player_id", playerID, "amount", amount, "balance", balance)
	return balance, nil
}
