// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package doctor

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no doctor matches the lookup.
var ErrNotFound = errors.New("doctor: record not found")

// Record is a doctor profile joined with the identity of its account,
// as listed in the admin directory.
type Record struct {
	Doctor
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Repository is the persistence contract for doctor profiles.
type Repository interface {
	// FindByRegistrationNumber returns the profile with the given
	// medical-council identifier, or [ErrNotFound].
	FindByRegistrationNumber(ctx context.Context, registrationNumber string) (*Record, error)

	// List returns all doctor profiles, newest first.
	List(ctx context.Context) ([]Record, error)

	// RegistrationNumberExists reports whether the identifier is taken.
	RegistrationNumberExists(ctx context.Context, registrationNumber string) (bool, error)
}
