// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the roster table used by the SQL roster backend.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Works on both PostgreSQL and SQLite.
const schema = `
-- Roster rows, one per submission, appended like spreadsheet rows
CREATE TABLE IF NOT EXISTS roster_row (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    choice TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_roster_row_submitted_at ON roster_row(submitted_at);
`
