package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on every open; each statement is
// idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS missions (
		agency     TEXT,
		date       TEXT PRIMARY KEY,
		location   TEXT,
		start_time TEXT,
		end_time   TEXT
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
