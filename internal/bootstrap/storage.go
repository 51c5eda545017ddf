package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/osse101/TriCard_Go/internal/config"
	"github.com/osse101/TriCard_Go/internal/database"
	"github.com/osse101/TriCard_Go/internal/database/memory"
	"github.com/osse101/TriCard_Go/internal/database/postgres"
	"github.com/osse101/TriCard_Go/internal/repository"
)

// Storage holds the repository implementations chosen by STORAGE_DRIVER.
// Pool is nil for the in-memory driver.
type Storage struct {
	Rooms   repository.Room
	Members repository.Member
	Ledger  repository.Ledger
	Pool    *pgxpool.Pool
}

// DBPool returns the pool as a database.Pool, or an untyped nil when there is none
func (s *Storage) DBPool() database.Pool {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

// Close releases the database pool if one is open
func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		slog.Info(LogMsgDatabaseClosed)
	}
}

// InitializeStorage connects the configured store. For postgres it opens the pool
// and applies the embedded migrations before returning.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		slog.Warn(LogMsgStorageMemory)
		store := memory.NewStore()
		return &Storage{Rooms: store, Members: store, Ledger: store}, nil

	case config.StorageDriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgMigrationsApplied)
		slog.Info(LogMsgStoragePostgres, "host", cfg.DBHost, "db", cfg.DBName)

		wallets := postgres.NewWalletRepository(pool)
		return &Storage{
			Rooms:   postgres.NewRoomRepository(pool),
			Members: wallets,
			Ledger:  wallets,
			Pool:    pool,
		}, nil
	}
	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageKind, cfg.StorageDriver)
}
