package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS lexicon_entries (
		language TEXT NOT NULL,
		id       TEXT NOT NULL,
		position INTEGER NOT NULL,
		base     TEXT NOT NULL,
		category TEXT NOT NULL,
		features TEXT NOT NULL DEFAULT '{}',
		forms    TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (language, id)
	)`,
	`CREATE INDEX IF NOT EXISTS lexicon_entries_base ON lexicon_entries (language, base COLLATE NOCASE)`,
	`CREATE INDEX IF NOT EXISTS lexicon_entries_position ON lexicon_entries (language, position)`,
}

// Migrate creates the lexicon tables when missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate lexicon schema: %w", err)
		}
	}
	return nil
}
