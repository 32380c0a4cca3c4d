// Package localdb persists the current provider session between runs so the
// session bootstrap can silently restore a login on startup. The backing
// store is a single-table sqlite database, migrated with goose.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/client/localdb/migrations"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the local database at dsn and applies pending
// migrations. Callers own closing the returned handle.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
