package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

// initializeDatabase opens M_USER, M_COMM_CODE and the audit table, migrating
// and seeding within DB_INIT_TIMEOUT.
func initializeDatabase(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	initCtx, cancel := context.WithTimeout(ctx, cfg.DBInitTimeout)
	defer cancel()

	db, err := store.New(initCtx, cfg.DatabaseDriver, cfg.DatabaseDSN, cfg)
	if err != nil {
		return nil, fmt.Errorf("database (%s): %w", cfg.DatabaseDriver, err)
	}
	log.Printf("Database ready (driver=%s)", cfg.DatabaseDriver)
	return db, nil
}
