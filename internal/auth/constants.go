// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import "time"

// # Validation Limits

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// MaxEmailLength caps the email column and any lookup key built from it.
	MaxEmailLength = 255

	// MaxNameLength caps first and last names.
	MaxNameLength = 100
)

// # Login Throttling

const (
	// MaxLoginAttempts is the number of failed logins tolerated per client
	// within [LoginAttemptWindow] before further attempts are rejected.
	MaxLoginAttempts = 10

	// LoginAttemptWindow is the sliding window for failed-login counting.
	LoginAttemptWindow = 15 * time.Minute
)
