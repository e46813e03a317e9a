package client

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed cache.sql
var cacheSQL string

// Cache is a durable store of fetched provision records, keyed by the
// normalized citation path and queried date. Uses SQLite with WAL mode
// so reads stay concurrent with writes.
type Cache struct {
	db *sql.DB
}

// OpenCache creates or opens a SQLite cache at the given path.
// Applies required pragmas and the schema automatically; safe to call
// on an existing cache file.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent fetches.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(cacheSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached response body for a path and date, if one is
// stored.
func (c *Cache) Get(ctx context.Context, path, date string) ([]byte, bool, error) {
	var body []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT body FROM responses WHERE path = ? AND date = ?",
		path, date,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache: %w", err)
	}
	return body, true, nil
}

// Put stores a response body for a path and date, replacing any
// earlier entry for the same query.
func (c *Cache) Put(ctx context.Context, path, date, requestID string, body []byte) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO responses (path, date, request_id, body) VALUES (?, ?, ?, ?)",
		path, date, requestID, body,
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}
