// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"context"
	"errors"

	"github.com/hamzahey/brainwave-api/internal/doctor"
	"github.com/hamzahey/brainwave-api/internal/patient"
)

// ErrNotFound is returned by repositories when no matching record exists.
var ErrNotFound = errors.New("auth: record not found")

// # Repository Interfaces

// UserRepository is the persistence contract for credential records.
type UserRepository interface {
	// FindByID returns the user with the given ID, or [ErrNotFound].
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the user with the given (lowercased) email, or
	// [ErrNotFound].
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByRefreshToken returns the user whose stored refresh token exactly
	// equals the given string, or [ErrNotFound]. Verbatim comparison is the
	// point: a signed token that was rotated away must not match.
	FindByRefreshToken(ctx context.Context, token string) (*User, error)

	// StoreRefreshToken overwrites the user's refresh-token slot, invalidating
	// whatever token was stored before.
	StoreRefreshToken(ctx context.Context, userID, token string) error

	// ClearRefreshToken nulls the user's refresh-token slot. Clearing an
	// already-empty slot is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error

	// TouchLastLogin records a successful authentication timestamp.
	TouchLastLogin(ctx context.Context, userID string) error
}

// EnrollmentRepository creates an account together with its role profile in
// a single transaction, so a failed profile insert never strands a bare user.
type EnrollmentRepository interface {
	CreatePatientAccount(ctx context.Context, user *User, profile *patient.Patient) error
	CreateDoctorAccount(ctx context.Context, user *User, profile *doctor.Doctor) error
}

// PatientDirectory exposes the existence check registration needs without
// pulling in the full patient repository.
type PatientDirectory interface {
	PatientIDExists(ctx context.Context, patientID string) (bool, error)
}

// DoctorDirectory exposes the existence check doctor enrollment needs.
type DoctorDirectory interface {
	RegistrationNumberExists(ctx context.Context, registrationNumber string) (bool, error)
}

// LoginThrottle counts failed login attempts per client key.
type LoginThrottle interface {
	// TooManyAttempts reports whether the key has exhausted its failure budget.
	TooManyAttempts(ctx context.Context, key string) (bool, error)

	// RecordFailure adds one failed attempt for the key.
	RecordFailure(ctx context.Context, key string) error

	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, key string) error
}
