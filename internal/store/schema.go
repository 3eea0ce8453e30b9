package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	answerEventsTable = "answer_events"
	snapshotsTable    = "snapshots"
)

// schema is applied in order on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp TEXT NOT NULL,
		session_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		item TEXT NOT NULL,
		correct INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_item ON answer_events (item)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		data TEXT NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
