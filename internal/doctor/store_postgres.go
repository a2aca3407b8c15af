// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements [Repository] backed by PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a doctor repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const recordColumns = `
	d.id, d.user_id, d.specialization, d.department, d.registration_number,
	d.hospital_name, d.qualifications, d.years_of_experience, d.created_at,
	u.first_name, u.last_name, u.email`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.Specialization, &r.Department, &r.RegistrationNumber,
		&r.HospitalName, &r.Qualifications, &r.YearsOfExperience, &r.CreatedAt,
		&r.FirstName, &r.LastName, &r.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning doctor: %w", err)
	}
	return &r, nil
}

// FindByRegistrationNumber returns the profile with the given identifier.
func (r *PostgresRepository) FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		WHERE d.registration_number = $1`

	return scanRecord(r.pool.QueryRow(ctx, query, registrationNumber))
}

// List returns all doctor profiles, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM doctors d
		JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// RegistrationNumberExists reports whether the identifier is taken.
func (r *PostgresRepository) RegistrationNumberExists(ctx context.Context, registrationNumber string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE registration_number = $1)`,
		registrationNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking registration number: %w", err)
	}
	return exists, nil
}
