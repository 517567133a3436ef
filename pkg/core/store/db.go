// Package store is the persistence collaborator: assumption sets, recorded
// actuals and saved scenarios load and save by project ID. The engine itself
// never touches the database; callers fetch inputs here and hand plain
// values to the core packages.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	pool *pgxpool.Pool
	once sync.Once
)

// InitDB opens the shared connection pool from DATABASE_URL. The pool is a
// process singleton; repeated calls after the first are no-ops.
func InitDB(ctx context.Context) error {
	var err error
	once.Do(func() {
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			err = fmt.Errorf("store: DATABASE_URL is not set")
			return
		}

		cfg, parseErr := pgxpool.ParseConfig(url)
		if parseErr != nil {
			err = fmt.Errorf("store: invalid DATABASE_URL: %w", parseErr)
			return
		}

		pool, err = pgxpool.NewWithConfig(ctx, cfg)
	})
	return err
}

// GetPool returns the shared pool, or nil when persistence is not
// configured. Repos treat a nil pool as an error; handlers treat it as
// "library features disabled".
func GetPool() *pgxpool.Pool {
	return pool
}

// Close releases the pool on shutdown.
func Close() {
	if pool != nil {
		pool.Close()
	}
}
