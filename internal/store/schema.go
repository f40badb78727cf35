package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableChunks    = "chunks"
	tableLLMEvents = "llm_request_events"
	tableAttempts  = "quiz_attempts"
)

// Tables are created with plain DDL. The FTS5 virtual table has no ent
// schema equivalent, so all tables are declared here side by side. The
// regular tables mirror the descriptors in ent/schema.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS chunks (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		source     TEXT    NOT NULL,
		page       INTEGER,
		position   INTEGER NOT NULL,
		content    TEXT    NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS chunks_source ON chunks (source)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS chunks_fts USING fts5(content)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     TEXT    NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_attempts (
		id             TEXT PRIMARY KEY,
		sequence       INTEGER NOT NULL,
		timestamp      TEXT    NOT NULL,
		quiz_id        TEXT    NOT NULL,
		topic          TEXT    NOT NULL DEFAULT '',
		question_count INTEGER NOT NULL,
		total_score    REAL    NOT NULL,
		max_score      REAL    NOT NULL,
		percentage     REAL    NOT NULL,
		report_path    TEXT    NOT NULL DEFAULT '',
		quiz_json      TEXT    NOT NULL,
		result_json    TEXT    NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
