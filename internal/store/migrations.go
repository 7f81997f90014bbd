package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for all tables.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS simulations (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		algorithm     TEXT NOT NULL,
		quantum       INTEGER NOT NULL DEFAULT 0,
		process_count INTEGER NOT NULL,
		makespan      INTEGER NOT NULL DEFAULT 0,
		avg_waiting   REAL NOT NULL DEFAULT 0,
		processes     TEXT NOT NULL,
		timeline      TEXT NOT NULL,
		report        TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_simulations_created_at ON simulations(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_simulations_algorithm ON simulations(algorithm)`,
}

// migrate runs all schema DDL statements.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
