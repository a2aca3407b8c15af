// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package patient

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

// NewPostgresRepository creates a patient repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const recordColumns = `
	p.id, p.user_id, p.patient_id, p.date_of_birth, p.gender,
	p.address, p.medical_history, p.allergies, p.emergency_contact,
	p.created_at,
	u.first_name, u.last_name, u.email`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.UserID, &r.PatientID, &r.DateOfBirth, &r.Gender,
		&r.Address, &r.MedicalHistory, &r.Allergies, &r.EmergencyContact,
		&r.CreatedAt,
		&r.FirstName, &r.LastName, &r.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning patient: %w", err)
	}
	return &r, nil
}

// FindByPatientID returns the profile with the given hospital identifier.
func (r *PostgresRepository) FindByPatientID(ctx context.Context, patientID string) (*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM patients p
		JOIN users u ON u.id = p.user_id
		WHERE p.patient_id = $1`

	return scanRecord(r.pool.QueryRow(ctx, query, patientID))
}

// List returns all patient profiles, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM patients p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
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

// PatientIDExists reports whether the hospital identifier is taken.
func (r *PostgresRepository) PatientIDExists(ctx context.Context, patientID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM patients WHERE patient_id = $1)`,
		patientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking patient id: %w", err)
	}
	return exists, nil
}
