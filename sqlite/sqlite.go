// Package sqlite provides SQLite-based storage implementations for
// docsearch services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// dsn builds the connection string. Pragmas ride along as query parameters,
// which the driver replays on every new connection: a 5s busy timeout so
// lock contention waits instead of failing, and enforced foreign keys so
// section rows cannot outlive their page. File-backed databases also get
// WAL journaling; in-memory ones do not support it.
func (db *DB) dsn() string {
	pragmas := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if db.path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	return "file:" + db.path + "?" + pragmas + "&_pragma=journal_mode(wal)"
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time is all SQLite allows anyway.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// The unique constraint on pages.path is load-bearing: concurrent upserts
// keyed by path must never produce duplicate pages. Deleting a page
// cascades to its sections; the parent link never cascades.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL UNIQUE,
			parent_page_id TEXT REFERENCES pages(id) ON DELETE SET NULL,
			checksum TEXT,
			meta TEXT,
			type TEXT NOT NULL DEFAULT 'markdown',
			source TEXT NOT NULL DEFAULT 'guide'
		);

		CREATE TABLE IF NOT EXISTS sections (
			id TEXT PRIMARY KEY,
			page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			slug TEXT NOT NULL DEFAULT '',
			heading TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			token_count INTEGER NOT NULL DEFAULT 0,
			embedding BLOB
		);

		CREATE INDEX IF NOT EXISTS idx_sections_page_id ON sections(page_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
