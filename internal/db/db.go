// Package db provides PostgreSQL access for the resume builder's key-value records.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the preferences table if it does not exist yet
const Schema = `CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Record is one stored JSON value
type Record struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Connect establishes a connection pool to the database and verifies it
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// EnsureSchema applies Schema
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create preferences table: %w", err)
	}
	return nil
}

// PutRecord stores value under key, replacing any previous value
func (db *DB) PutRecord(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO preferences (key, value, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// GetRecord loads the value stored under key. It returns nil, nil when the key is absent.
func (db *DB) GetRecord(ctx context.Context, key string) (*Record, error) {
	rec := Record{Key: key}
	err := db.pool.QueryRow(ctx,
		`SELECT value, updated_at FROM preferences WHERE key = $1`,
		key,
	).Scan(&rec.Value, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return &rec, nil
}

// DeleteRecord removes key; deleting an absent key is not an error
func (db *DB) DeleteRecord(ctx context.Context, key string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM preferences WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
