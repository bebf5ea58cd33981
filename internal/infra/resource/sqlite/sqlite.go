// Package sqlite stores collection payloads in a single SQLite database, one
// bucket row per collection. It offers the same full-payload read/write
// contract as the file backend for deployments that prefer one durable file
// over a directory of JSON documents.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"propertycore/internal/store"
)

// DB wraps the shared database handle. Each collection binds to one bucket.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the
// collections table exists.
func Open(path string) (*DB, error) {
	if path == "" {
		path = "propertycore.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Resource binds a bucket name to the shared database.
func (d *DB) Resource(bucket string) *Resource {
	return &Resource{db: d.db, bucket: bucket}
}

// Path returns the configured database path.
func (d *DB) Path() string { return d.path }

// Close releases the database handle.
func (d *DB) Close() error { return d.db.Close() }

// Resource reads and writes one bucket row.
type Resource struct {
	db     *sql.DB
	bucket string
}

func (r *Resource) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE bucket = ?`, r.bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("select bucket %s: %w", r.bucket, err)
	}
	return payload, nil
}

func (r *Resource) Write(ctx context.Context, payload []byte) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO collections(bucket, payload) VALUES(?, ?)
		 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
		r.bucket, payload); err != nil {
		return fmt.Errorf("upsert bucket %s: %w", r.bucket, err)
	}
	return nil
}
