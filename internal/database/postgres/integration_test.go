package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/skyaree/rollbox/internal/database"
	"github.com/skyaree/rollbox/internal/domain"
	"github.com/skyaree/rollbox/internal/repository"
)

const migrationsDir = "../../../migrations"

// setupTestDB starts a disposable Postgres container, runs migrations and
// returns a connected pool. Skips the test when Docker is unavailable.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(5*time.Second)),
		)
	}()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		t.SkipNow()
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(ctx, connStr, migrationsDir))

	pool, err := database.NewPool(ctx, database.PoolConfig{ConnString: connStr})
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func TestPlayerRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPlayerRepository(pool)
	ctx := context.Background()

	t.Run("GetOrCreate creates with starting balance", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:100", 100)

		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "twitch:100", player.ExternalID)
		assert.Equal(t, 100, player.Balance)
	})

	t.Run("GetOrCreate is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, "twitch:101", 100)
		require.NoError(t, err)

		again, err := repo.GetOrCreate(ctx, "twitch:101", 999)
		require.NoError(t, err)

		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, 100, again.Balance)
	})

	t.Run("GetByExternalID returns not found", func(t *testing.T) {
		_, err := repo.GetByExternalID(ctx, "nobody")

		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("Debit decrements and reports new balance", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:102", 100)
		require.NoError(t, err)

		balance, err := repo.Debit(ctx, player.ID, 20)

		require.NoError(t, err)
		assert.Equal(t, 80, balance)
	})

	t.Run("Debit refuses overdraft and leaves balance unchanged", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:103", 10)
		require.NoError(t, err)

		_, err = repo.Debit(ctx, player.ID, 20)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		fresh, err := repo.GetByExternalID(ctx, "twitch:103")
		require.NoError(t, err)
		assert.Equal(t, 10, fresh.Balance)
	})

	t.Run("Credit increments", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:104", 100)
		require.NoError(t, err)

		balance, err := repo.Credit(ctx, player.ID, 50)

		require.NoError(t, err)
		assert.Equal(t, 150, balance)
	})

	t.Run("Tx debit and grant commit together", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:105", 100)
		require.NoError(t, err)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		balance, err := tx.Debit(ctx, player.ID, 20)
		require.NoError(t, err)
		assert.Equal(t, 80, balance)

		require.NoError(t, tx.AddInventoryItem(ctx, player.ID, "Novice Sword", 1))
		require.NoError(t, tx.Commit(ctx))

		fresh, err := repo.GetByExternalID(ctx, "twitch:105")
		require.NoError(t, err)
		assert.Equal(t, 80, fresh.Balance)

		invRepo := NewInventoryRepository(pool)
		count, err := invRepo.CountByPlayer(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Tx rollback restores balance and grants nothing", func(t *testing.T) {
		player, err := repo.GetOrCreate(ctx, "twitch:106", 100)
		require.NoError(t, err)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		_, err = tx.Debit(ctx, player.ID, 20)
		require.NoError(t, err)
		require.NoError(t, tx.AddInventoryItem(ctx, player.ID, "Novice Sword", 1))
		require.NoError(t, tx.Rollback(ctx))

		fresh, err := repo.GetByExternalID(ctx, "twitch:106")
		require.NoError(t, err)
		assert.Equal(t, 100, fresh.Balance)

		invRepo := NewInventoryRepository(pool)
		count, err := invRepo.CountByPlayer(ctx, player.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestInventoryRepository_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	playerRepo := NewPlayerRepository(pool)
	invRepo := NewInventoryRepository(pool)
	ctx := context.Background()

	player, err := playerRepo.GetOrCreate(ctx, "twitch:200", 200)
	require.NoError(t, err)

	grant := func(name string) {
		tx, err := playerRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.AddInventoryItem(ctx, player.ID, name, 1))
		require.NoError(t, tx.Commit(ctx))
	}

	// Grant sequence A, A, B, A, C
	grant("Novice Sword")
	grant("Novice Sword")
	grant("Hero Shield")
	grant("Novice Sword")
	grant("Epic Boost")

	grouped, err := invRepo.ListGrouped(ctx, player.ID)
	require.NoError(t, err)

	require.Len(t, grouped, 3)
	assert.Equal(t, domain.GroupedItem{ItemName: "Novice Sword", ItemLevel: 1, Count: 3}, grouped[0])
	// Equal counts are ordered by name.
	assert.Equal(t, domain.GroupedItem{ItemName: "Epic Boost", ItemLevel: 1, Count: 1}, grouped[1])
	assert.Equal(t, domain.GroupedItem{ItemName: "Hero Shield", ItemLevel: 1, Count: 1}, grouped[2])

	count, err := invRepo.CountByPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestPlayerRepository_ConcurrentDebits_Integration(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPlayerRepository(pool)
	ctx := context.Background()

	// Balance covers exactly one debit; concurrent attempts must not
	// double-spend.
	player, err := repo.GetOrCreate(ctx, "twitch:300", 20)
	require.NoError(t, err)

	const workers = 10
	results := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, txErr := repo.BeginTx(ctx)
			if txErr != nil {
				results[i] = txErr
				return
			}
			defer repository.SafeRollback(ctx, tx)

			if _, txErr = tx.Debit(ctx, player.ID, 20); txErr != nil {
				results[i] = txErr
				return
			}
			if txErr = tx.AddInventoryItem(ctx, player.ID, "Novice Sword", 1); txErr != nil {
				results[i] = txErr
				return
			}
			results[i] = tx.Commit(ctx)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		require.True(t, errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrConcurrentConflict),
			"unexpected error: %v", err)
	}
	assert.Equal(t, 1, successes)

	fresh, err := repo.GetByExternalID(ctx, "twitch:300")
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.Balance)

	invRepo := NewInventoryRepository(pool)
	count, err := invRepo.CountByPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
