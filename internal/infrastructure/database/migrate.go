package database

import (
	"context"
	"fmt"
)

// Migrate ensures the schema exists. Statements are idempotent; a version
// table is kept so future migrations can be ordered.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`,
		`CREATE TABLE IF NOT EXISTS entries (
			id             UUID PRIMARY KEY,
			title          TEXT NOT NULL,
			slug           TEXT NOT NULL,
			excerpt        TEXT NOT NULL DEFAULT '',
			content        TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL,
			date           TIMESTAMPTZ NOT NULL,
			read_time      TEXT NOT NULL DEFAULT '1 min',
			image_url      TEXT NOT NULL DEFAULT '',
			author_name    TEXT NOT NULL DEFAULT '',
			author_role    TEXT NOT NULL DEFAULT '',
			author_avatar  TEXT NOT NULL DEFAULT '',
			author_email   TEXT NOT NULL DEFAULT '',
			author_bio     TEXT NOT NULL DEFAULT '',
			likes          INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
			comments_count INTEGER NOT NULL DEFAULT 0 CHECK (comments_count >= 0),
			published      BOOLEAN NOT NULL DEFAULT FALSE,
			metadata       JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_slug ON entries(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_published ON entries(published)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id            UUID PRIMARY KEY,
			entry_id      UUID NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
			parent_id     UUID REFERENCES comments(id) ON DELETE CASCADE,
			author_name   TEXT NOT NULL,
			author_avatar TEXT NOT NULL DEFAULT '',
			text          TEXT NOT NULL,
			likes         INTEGER NOT NULL DEFAULT 0,
			is_author     BOOLEAN NOT NULL DEFAULT FALSE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_entry ON comments(entry_id, created_at)`,
		`INSERT INTO schema_migrations (version) VALUES (1) ON CONFLICT DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
