// Package db opens the rentdesk SQLite database and keeps its schema current.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// connParams are applied by the driver to every connection it opens.
var connParams = url.Values{
	"_journal_mode": {"WAL"},
	"_foreign_keys": {"on"},
	"_busy_timeout": {"5000"},
	// Write transactions take the lock up front so a batch cannot fail
	// half way on SQLITE_BUSY.
	"_txlock": {"immediate"},
}

// DefaultPath returns the default database path: ~/.rentdesk/rentdesk.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".rentdesk", "rentdesk.db"), nil
}

func dsn(path string) string {
	return "file:" + path + "?" + connParams.Encode()
}

// Open opens (or creates) the database at path and migrates it. The pool
// holds one connection, so every statement sees the same transaction state.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, closeOnError(db, fmt.Errorf("connecting to %s: %w", path, err))
	}
	if err := migrate(db); err != nil {
		return nil, closeOnError(db, fmt.Errorf("running migrations: %w", err))
	}

	return db, nil
}

func closeOnError(db *sql.DB, err error) error {
	if cerr := db.Close(); cerr != nil {
		return errors.Join(err, fmt.Errorf("closing database: %w", cerr))
	}
	return err
}
