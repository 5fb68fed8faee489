// Package cache provides a durable TTL result cache in front of tool
// execution. Entries expire lazily: expiry is checked at read time and no
// background sweep runs. The store is backed by SQLite so results survive
// process restarts and stay consistent under concurrent dispatch workers.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store is a TTL-keyed result store safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// A single connection serializes writers so concurrent dispatch
	// workers never hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}

	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the cached value for key if it has not expired. The expiry
// check happens inside the query, so check-then-read is atomic per key.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	row := s.db.QueryRow(
		`SELECT value FROM results WHERE key = ? AND expires_at > ?`,
		key, s.now().UnixMilli(),
	)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache read failed: %w", err)
	}
	return value, true, nil
}

// Set stores value under key for the given TTL. A non-positive TTL is a
// no-op, so callers can disable caching per category without branching.
// The upsert is a single statement: readers never observe a partial entry.
func (s *Store) Set(key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	expiresAt := s.now().Add(ttl).UnixMilli()
	_, err := s.db.Exec(
		`INSERT INTO results (key, value, expires_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
