// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package analysis

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates an analysis repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveAll inserts a batch of analyses in one transaction using a pgx batch,
// so a hundred-patient inference run costs one round trip.
func (r *PostgresRepository) SaveAll(ctx context.Context, analyses []Analysis) error {
	if len(analyses) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, a := range analyses {
		batch.Queue(`
			INSERT INTO analyses (id, patient_id, requested_by, status, results, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID, a.PatientID, a.RequestedBy, a.Status, a.Results, a.CreatedAt,
		)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // No-op after commit.

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("saving analyses: %w", err)
	}
	return tx.Commit(ctx)
}

const analysisColumns = `id, patient_id, requested_by, status, results, created_at`

func collectAnalyses(rows pgx.Rows) ([]Analysis, error) {
	defer rows.Close()

	analyses := make([]Analysis, 0)
	for rows.Next() {
		var a Analysis
		err := rows.Scan(&a.ID, &a.PatientID, &a.RequestedBy, &a.Status, &a.Results, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// ListAll returns every analysis, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Analysis, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return collectAnalyses(rows)
}

// ListByRequester returns the analyses submitted by one user, newest first.
func (r *PostgresRepository) ListByRequester(ctx context.Context, userID string) ([]Analysis, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE requested_by = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return collectAnalyses(rows)
}
