// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package patient

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient: record not found")

// Record is a patient profile joined with the identity of its account,
// as listed in the admin directory.
type Record struct {
	Patient
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Repository is the persistence contract for patient profiles.
type Repository interface {
	// FindByPatientID returns the profile with the given hospital identifier,
	// or [ErrNotFound].
	FindByPatientID(ctx context.Context, patientID string) (*Record, error)

	// List returns all patient profiles, newest first.
	List(ctx context.Context) ([]Record, error)

	// PatientIDExists reports whether the hospital identifier is taken.
	PatientIDExists(ctx context.Context, patientID string) (bool, error)
}
