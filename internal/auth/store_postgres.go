// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hamzahey/brainwave-api/internal/doctor"
	"github.com/hamzahey/brainwave-api/internal/patient"
	"github.com/hamzahey/brainwave-api/internal/platform/dberr"
)

// PostgresRepository implements [UserRepository] and [EnrollmentRepository]
// backed by PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a user repository over the given pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const userColumns = `
	id, email, password_hash, role, first_name, last_name, phone_number,
	is_active, last_login, refresh_token, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.IsActive, &u.LastLogin, &u.RefreshToken, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return &u, nil
}

// # Lookups

// FindByID returns the user with the given ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindByEmail returns the user with the given email.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// FindByRefreshToken returns the user whose stored refresh token exactly
// equals the given string.
func (r *PostgresRepository) FindByRefreshToken(ctx context.Context, token string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token))
}

// # Session Slot

// StoreRefreshToken overwrites the user's refresh-token slot.
func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, userID, token string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token = $2 WHERE id = $1`, userID, token)
	if err != nil {
		return fmt.Errorf("storing refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearRefreshToken nulls the user's refresh-token slot.
func (r *PostgresRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clearing refresh token: %w", err)
	}
	return nil
}

// TouchLastLogin records a successful authentication timestamp.
func (r *PostgresRepository) TouchLastLogin(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("touching last login: %w", err)
	}
	return nil
}

// CreateUser inserts a bare user with no role profile. Used by the admin
// bootstrap; regular accounts go through [EnrollmentRepository].
func (r *PostgresRepository) CreateUser(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, insertUserQuery,
		u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName,
		u.PhoneNumber, u.IsActive, u.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Email is already registered")
	}
	return nil
}

// # Enrollment

const insertUserQuery = `
	INSERT INTO users (
		id, email, password_hash, role, first_name, last_name, phone_number,
		is_active, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func insertUser(ctx context.Context, tx pgx.Tx, u *User) error {
	_, err := tx.Exec(ctx, insertUserQuery,
		u.ID, u.Email, u.PasswordHash, u.Role, u.FirstName, u.LastName,
		u.PhoneNumber, u.IsActive, u.CreatedAt,
	)
	return err
}

// CreatePatientAccount inserts the user and its patient profile atomically.
func (r *PostgresRepository) CreatePatientAccount(ctx context.Context, user *User, profile *patient.Patient) error {
	return r.inTx(ctx, "Email or patient ID is already registered", func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO patients (
				id, user_id, patient_id, date_of_birth, gender,
				address, medical_history, allergies, emergency_contact, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			profile.ID, profile.UserID, profile.PatientID, profile.DateOfBirth,
			profile.Gender, profile.Address, profile.MedicalHistory,
			profile.Allergies, profile.EmergencyContact, profile.CreatedAt,
		)
		return err
	})
}

// CreateDoctorAccount inserts the user and its doctor profile atomically.
func (r *PostgresRepository) CreateDoctorAccount(ctx context.Context, user *User, profile *doctor.Doctor) error {
	return r.inTx(ctx, "Email or registration number is already registered", func(tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (
				id, user_id, specialization, department, registration_number,
				hospital_name, qualifications, years_of_experience, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			profile.ID, profile.UserID, profile.Specialization, profile.Department,
			profile.RegistrationNumber, profile.HospitalName, profile.Qualifications,
			profile.YearsOfExperience, profile.CreatedAt,
		)
		return err
	})
}

// inTx runs fn inside a transaction and maps storage errors, tagging
// uniqueness violations with the given conflict message.
func (r *PostgresRepository) inTx(ctx context.Context, conflictMsg string, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // No-op after commit.

	if err := fn(tx); err != nil {
		return dberr.Wrap(err, conflictMsg)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
