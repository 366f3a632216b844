package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// Days (with their tasks) are stored as one JSON document per
		// challenge; the progression engine always rewrites them wholesale.
		`CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			prompt TEXT NOT NULL DEFAULT '',
			start_at TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT 'UTC',
			days TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		// AI plan generations per ISO week, e.g. "2026-W35".
		`CREATE TABLE IF NOT EXISTS generation_usage (
			week_key TEXT PRIMARY KEY,
			used INTEGER NOT NULL DEFAULT 0
		);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
