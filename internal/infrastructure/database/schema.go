package database

import (
	"context"
	"fmt"
)

// JSON 列统一用 TEXT 存储,postgres 与 sqlite 行为一致。
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'contributor',
		dialects      TEXT NOT NULL DEFAULT '[]',
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id                  TEXT PRIMARY KEY,
		source_book         TEXT NOT NULL DEFAULT '',
		headword            TEXT NOT NULL,
		headword_normalized TEXT NOT NULL DEFAULT '',
		dialect             TEXT NOT NULL DEFAULT '',
		region_code         TEXT NOT NULL DEFAULT '',
		phonetic            TEXT NOT NULL DEFAULT '{}',
		phonetic_notation   TEXT NOT NULL DEFAULT '',
		entry_type          TEXT NOT NULL DEFAULT 'word',
		senses              TEXT NOT NULL DEFAULT '[]',
		refs                TEXT NOT NULL DEFAULT '[]',
		theme               TEXT NOT NULL DEFAULT '{}',
		theme_l3_id         INTEGER NOT NULL DEFAULT 0,
		meta                TEXT NOT NULL DEFAULT '{}',
		status              TEXT NOT NULL DEFAULT 'draft',
		lexeme_id           TEXT NOT NULL DEFAULT '',
		morpheme_refs       TEXT NOT NULL DEFAULT '[]',
		created_by          TEXT NOT NULL DEFAULT '',
		updated_by          TEXT NOT NULL DEFAULT '',
		reviewed_by         TEXT NOT NULL DEFAULT '',
		reviewed_at         TIMESTAMP,
		review_notes        TEXT NOT NULL DEFAULT '',
		view_count          INTEGER NOT NULL DEFAULT 0,
		like_count          INTEGER NOT NULL DEFAULT 0,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_headword ON entries (headword_normalized)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_dialect ON entries (dialect)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_status ON entries (status)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_theme_l3 ON entries (theme_l3_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_created_by ON entries (created_by)`,
	`CREATE TABLE IF NOT EXISTS edit_histories (
		id             TEXT PRIMARY KEY,
		entry_id       TEXT NOT NULL,
		editor_id      TEXT NOT NULL,
		action         TEXT NOT NULL,
		changed_fields TEXT NOT NULL DEFAULT '[]',
		before_doc     TEXT,
		after_doc      TEXT,
		created_at     TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_histories_entry ON edit_histories (entry_id)`,
	`CREATE INDEX IF NOT EXISTS idx_histories_editor ON edit_histories (editor_id)`,
}

// InitSchema creates all tables and indexes if they do not exist yet.
func InitSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
