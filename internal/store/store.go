package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 0 - tables from schema.sql only
// 1 - index on runs(kind, seq) for LatestRun
const currentSchemaVersion = 1

// Store records synchronization runs in a SQLite database.
type Store struct {
	db  *sql.DB
	ids IDGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUIDv7 run id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// Open creates or opens the database at path and brings its schema up to
// date. Opening an existing database is safe and leaves its rows intact.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < 1 {
		if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_kind_seq ON runs(kind, seq)`); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// pragma reads a single pragma value. Used by tests.
func (s *Store) pragma(name string) (string, error) {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return "", fmt.Errorf("query %s: %w", name, err)
	}
	return value, nil
}
