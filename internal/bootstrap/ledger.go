package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenLedger builds the store for the configured driver. The returned cleanup releases
// the store and any pool opened for it.
func OpenLedger(ctx context.Context, cfg *config.Config) (repository.LedgerStore, func(), error) {
	switch cfg.Ledger.Driver {
	case config.LedgerMemory:
		store := repository.NewMemoryLedger()
		return store, func() { _ = store.Close() }, nil

	case config.LedgerFile:
		store, err := repository.OpenFileLedger(cfg.Ledger.FileDir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.LedgerSQLite:
		store, err := repository.OpenSQLiteLedger(ctx, cfg.Ledger.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	case config.LedgerPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := repository.NewPGLedger(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, func() { _ = store.Close(); pool.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown ledger driver %q", cfg.Ledger.Driver)
}
