package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
)

var defaultDB *sql.DB

const (
	createCoverCacheSQL = `
CREATE TABLE IF NOT EXISTS cover_fetch_cache_tab (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	rom_key VARCHAR(256) NOT NULL,
	cover_name VARCHAR(256) NOT NULL,
	outcome VARCHAR(16) NOT NULL,
	score INTEGER NOT NULL,
	create_time BIGINT NOT NULL,
	update_time BIGINT NOT NULL
);`

	createCoverCacheIndexSQL = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_cover_fetch_cache_tab_key
ON cover_fetch_cache_tab(rom_key);`
)

// SetDefault assigns the global database instance.
func SetDefault(db *sql.DB) {
	defaultDB = db
}

// Default returns the configured global database instance.
func Default() *sql.DB {
	return defaultDB
}

// Open opens (or creates) the cache database at path and ensures the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db %s: %w", path, err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema initialises required tables and indexes.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, createCoverCacheSQL); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, createCoverCacheIndexSQL); err != nil {
		return err
	}
	return nil
}
