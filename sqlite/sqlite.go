// Package sqlite provides SQLite-based storage for grail catalogs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB is the catalog database handle shared by the services.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path. The path ":memory:" keeps the
// catalog in memory.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects and ensures the items table exists.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect to catalog database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	// WAL is unsupported for in-memory databases.
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the connection. Safe to call before Open.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext runs a single-row query.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			subcategory TEXT NOT NULL DEFAULT '',
			set_name TEXT NOT NULL DEFAULT '',
			tier TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_items_position ON items(position);
		CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
		CREATE INDEX IF NOT EXISTS idx_items_set_name ON items(set_name);
	`

	_, err := db.db.Exec(schema)
	return err
}
