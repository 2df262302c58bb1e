// Package db provides PostgreSQL persistence for audit results.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
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

// AuditRun is one recorded audit invocation.
type AuditRun struct {
	ID          uuid.UUID  `json:"id"`
	PropertyURL string     `json:"property_url"`
	Trigger     string     `json:"trigger"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateAuditRun records the start of an audit run and returns its ID.
func (db *DB) CreateAuditRun(ctx context.Context, propertyURL, trigger string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO audit_runs (property_url, trigger, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		propertyURL, trigger,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create audit run: %w", err)
	}
	return id, nil
}

// CompleteAuditRun marks an audit run as finished with the given status.
func (db *DB) CompleteAuditRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE audit_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete audit run: %w", err)
	}
	return nil
}

// GetAuditRun retrieves an audit run by ID, or nil when absent.
func (db *DB) GetAuditRun(ctx context.Context, runID uuid.UUID) (*AuditRun, error) {
	var run AuditRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, property_url, trigger, status, created_at, completed_at
		 FROM audit_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.PropertyURL, &run.Trigger, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get audit run: %w", err)
	}
	return &run, nil
}

// LastCompletedRunAt returns when the property's most recent successful
// audit finished, or nil when it has never completed one.
func (db *DB) LastCompletedRunAt(ctx context.Context, propertyURL string) (*time.Time, error) {
	var completed *time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT completed_at FROM audit_runs
		 WHERE property_url = $1 AND status = 'completed'
		 ORDER BY completed_at DESC LIMIT 1`,
		propertyURL,
	).Scan(&completed)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last completed run: %w", err)
	}
	return completed, nil
}

// ListAuditRuns retrieves recent runs for a property, newest first.
func (db *DB) ListAuditRuns(ctx context.Context, propertyURL string, limit int) ([]AuditRun, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, property_url, trigger, status, created_at, completed_at
		 FROM audit_runs WHERE property_url = $1
		 ORDER BY created_at DESC LIMIT $2`,
		propertyURL, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit runs: %w", err)
	}
	defer rows.Close()

	var runs []AuditRun
	for rows.Next() {
		var run AuditRun
		if err := rows.Scan(&run.ID, &run.PropertyURL, &run.Trigger, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
