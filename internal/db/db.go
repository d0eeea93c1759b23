package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ErrNoPrimaryKey indicates the missions table exists but carries no
// primary key column. The store cannot address rows without one, so this
// is fatal at startup.
var ErrNoPrimaryKey = errors.New("missions table has no primary key column")

// OpenDB opens the SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode, creates the schema if absent, and verifies the missions
// table has a primary key.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL keeps the single writer from blocking list reads.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	if err := verifyPrimaryKey(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// verifyPrimaryKey asserts that the missions table declares a primary key.
func verifyPrimaryKey(db *sql.DB) error {
	rows, err := db.Query(`PRAGMA table_info(missions)`)
	if err != nil {
		return fmt.Errorf("reading missions schema: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return fmt.Errorf("scanning missions schema: %w", err)
		}
		if pk > 0 {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating missions schema: %w", err)
	}
	return ErrNoPrimaryKey
}
