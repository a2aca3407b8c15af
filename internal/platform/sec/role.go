// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package sec

// # User Roles

// Role represents the authorization class granted to an account.
//
// The set is closed: exactly three roles exist and there is no hierarchy
// between them. Authorization is always a set-membership check, never a
// level comparison.
type Role string

const (
	// Platform operators; may enroll doctors and browse the directory
	RoleAdmin Role = "admin"

	// Clinicians; may record and review prognosis analyses
	RoleDoctor Role = "doctor"

	// Default role for self-registered users
	RolePatient Role = "patient"
)

// Valid reports whether the role is one of the three known variants.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// OneOf reports whether the role is a member of the allowed set.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
