package roll

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyaree/rollbox/internal/catalog"
	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/repository"
)

// memoryRepo is an in-memory repository.Player with serializable
// transactions: BeginTx takes an exclusive lock that is held until Commit or
// Rollback, so concurrent rolls on the same store execute one at a time, the
// same isolation the database gives per-row.
type memoryRepo struct {
	mu        sync.Mutex
	balances  map[string]int
	inventory map[string][]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		balances:  make(map[string]int),
		inventory: make(map[string][]string),
	}
}

func (r *memoryRepo) GetOrCreate(ctx context.Context, externalID string, startingBalance int) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.balances[externalID]; !ok {
		r.balances[externalID] = startingBalance
	}
	return &domain.Player{ID: externalID, ExternalID: externalID, Balance: r.balances[externalID]}, nil
}

func (r *memoryRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[externalID]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return &domain.Player{ID: externalID, ExternalID: externalID, Balance: balance}, nil
}

func (r *memoryRepo) Debit(ctx context.Context, playerID string, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.debitLocked(playerID, amount)
}

func (r *memoryRepo) Credit(ctx context.Context, playerID string, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[playerID] += amount
	return r.balances[playerID], nil
}

func (r *memoryRepo) debitLocked(playerID string, amount int) (int, error) {
	balance, ok := r.balances[playerID]
	if !ok {
		return 0, domain.ErrPlayerNotFound
	}
	if balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	r.balances[playerID] = balance - amount
	return r.balances[playerID], nil
}

func (r *memoryRepo) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	r.mu.Lock()
	return &memoryTx{repo: r, staged: make(map[string]int)}, nil
}

// memoryTx stages mutations and applies them on Commit. The repo lock is
// held for the lifetime of the transaction.
type memoryTx struct {
	repo       *memoryRepo
	staged     map[string]int
	stagedItem []stagedGrant
	done       bool
}

type stagedGrant struct {
	playerID string
	itemName string
}

func (t *memoryTx) Debit(ctx context.Context, playerID string, amount int) (int, error) {
	balance, ok := t.repo.balances[playerID]
	if s, staged := t.staged[playerID]; staged {
		balance, ok = s, true
	}
	if !ok {
		return 0, domain.ErrPlayerNotFound
	}
	if balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	t.staged[playerID] = balance - amount
	return balance - amount, nil
}

func (t *memoryTx) AddInventoryItem(ctx context.Context, playerID, itemName string, itemLevel int) error {
	t.stagedItem = append(t.stagedItem, stagedGrant{playerID: playerID, itemName: itemName})
	return nil
}

func (t *memoryTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	for id, balance := range t.staged {
		t.repo.balances[id] = balance
	}
	for _, g := range t.stagedItem {
		t.repo.inventory[g.playerID] = append(t.repo.inventory[g.playerID], g.itemName)
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.done = true
	t.repo.mu.Unlock()
	return nil
}

func TestRoll_ConcurrentSamePlayer_NoDoubleSpend(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, catalog.Default())

	ctx := context.Background()
	// Balance covers exactly one roll; every other concurrent attempt must
	// fail with insufficient funds.
	_, err := repo.GetOrCreate(ctx, "player1", Cost)
	require.NoError(t, err)

	const workers = 16
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.Roll(ctx, "player1")
		}(i)
	}
	wg.Wait()

	successes, insufficient := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, insufficient)
	assert.Equal(t, 0, repo.balances["player1"])
	assert.Len(t, repo.inventory["player1"], 1)
}

func TestRoll_ConcurrentDistinctPlayers_AllSucceed(t *testing.T) {
	repo := newMemoryRepo()
	s := NewService(repo, catalog.Default())

	ctx := context.Background()
	const players = 8
	ids := make([]string, players)
	for i := range ids {
		ids[i] = string(rune('a' + i))
		_, err := repo.GetOrCreate(ctx, ids[i], Cost*2)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, players)
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.Roll(ctx, id)
		}(i, id)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "player %s", ids[i])
		assert.Equal(t, Cost, repo.balances[ids[i]])
		assert.Len(t, repo.inventory[ids[i]], 1)
	}
}

func TestRoll_DistributionFollowsWeights(t *testing.T) {
	repo := newMemoryRepo()
	rng := rand.New(rand.NewPCG(7, 13))
	s := NewServiceWithRand(repo, catalog.Default(), rng.Float64)

	ctx := context.Background()
	const rolls = 5000
	_, err := repo.GetOrCreate(ctx, "player1", rolls*Cost)
	require.NoError(t, err)

	counts := make(map[string]int)
	for i := 0; i < rolls; i++ {
		result, err := s.Roll(ctx, "player1")
		require.NoError(t, err)
		counts[result.ItemName]++
	}

	// Observed frequencies should sit near the configured weights. A 3%
	// absolute tolerance keeps the test stable for a fixed seed.
	expected := map[string]float64{
		"Novice Sword":       0.50,
		"Hero Shield":        0.30,
		"Epic Boost":         0.15,
		"Legendary Artifact": 0.05,
	}
	for name, weight := range expected {
		got := float64(counts[name]) / rolls
		assert.InDelta(t, weight, got, 0.03, "item %s", name)
	}
	assert.Equal(t, 0, repo.balances["player1"])
}
