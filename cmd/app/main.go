package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skyaree/rollbox/internal/catalog"
	"github.com/skyaree/rollbox/internal/config"
	"github.com/skyaree/rollbox/internal/database"
	"github.com/skyaree/rollbox/internal/database/postgres"
	"github.com/skyaree/rollbox/internal/economy"
	"github.com/skyaree/rollbox/internal/handler"
	"github.com/skyaree/rollbox/internal/inventory"
	"github.com/skyaree/rollbox/internal/ledger"
	"github.com/skyaree/rollbox/internal/roll"
	"github.com/skyaree/rollbox/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	// The item catalog is validated up front; a misconfigured table is fatal.
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Catalog file not found, using built-in defaults", "path", cfg.CatalogPath)
			cat = catalog.Default()
		} else {
			slog.Error("Failed to load item catalog", "error", err, "path", cfg.CatalogPath)
			os.Exit(1)
		}
	}

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.GetDBConnString(), cfg.MigrationsDir); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      cfg.GetDBConnString(),
		MaxConns:        cfg.DBMaxConns,
		MaxConnIdleTime: cfg.DBConnMaxIdleTime,
		MaxConnLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	playerRepo := postgres.NewPlayerRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)

	ledgerService := ledger.NewService(playerRepo)
	rollService := roll.NewService(playerRepo, cat)
	inventoryService := inventory.NewService(inventoryRepo)
	economyService := economy.NewService(ledgerService, rollService, inventoryService)

	srv := server.NewServer(cfg.Port, dbPool, economyService)

	// Run the server until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Server stopped")
	}
}
