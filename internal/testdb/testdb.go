// Package testdb opens the Postgres database used by integration tests.
package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"graetzlmap/internal/migrate"
)

// Pool connects to TEST_DB_DSN, applies migrations and empties all tables.
// Tests are skipped when the variable is unset.
func Pool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("ping db: %v", err)
	}
	if err := migrate.Apply(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE pois, categories, tags, collections`); err != nil {
		pool.Close()
		t.Fatalf("truncate tables: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
