// Package postgres stores collection payloads in a Postgres table, one
// bucket row per collection, mirroring the sqlite backend for installations
// that already run a database server.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"propertycore/internal/store"
)

const (
	defaultDriver = "pgx"
	defaultDSN    = "postgres://localhost/propertycore?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// DB wraps the shared database handle. Each collection binds to one bucket.
type DB struct {
	db *sql.DB
}

// Open connects using the provided DSN (falling back to a local default) and
// ensures the collections table exists.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(defaultDriver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS collections (
		bucket TEXT PRIMARY KEY,
		payload JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("ensure collections table: %w", err)
	}
	return &DB{db: db}, nil
}

// Resource binds a bucket name to the shared database.
func (d *DB) Resource(bucket string) *Resource {
	return &Resource{db: d.db, bucket: bucket}
}

// Close releases the database handle.
func (d *DB) Close() error { return d.db.Close() }

// Resource reads and writes one bucket row.
type Resource struct {
	db     *sql.DB
	bucket string
}

func (r *Resource) Read(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE bucket = $1`, r.bucket).Scan(&payload)
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
		`INSERT INTO collections(bucket, payload) VALUES($1, $2)
		 ON CONFLICT(bucket) DO UPDATE SET payload = EXCLUDED.payload`,
		r.bucket, payload); err != nil {
		return fmt.Errorf("upsert bucket %s: %w", r.bucket, err)
	}
	return nil
}

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
