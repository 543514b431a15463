// Package db keeps object and wall object placements in PostgreSQL.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a connection pool to the placement store.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle. It does not touch
// the schema; use Open for a store that is ready to read.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to placement store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging placement store: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Open connects to the placement store at dsn and brings its tables up to
// date.
func Open(ctx context.Context, dsn string) (*DB, error) {
	d, err := New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, dsn); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Placements returns a repository over the store's pool.
func (d *DB) Placements() *PlacementRepository {
	return NewPlacementRepository(d.pool)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}
