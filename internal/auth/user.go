// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

/*
Package auth implements the authentication and session-lifecycle core.

It owns the credential store (User), the dual-token session flows
(register, login, refresh, logout, check), and the cookie transport for
both tokens.

# Architecture

  - Service: Orchestrates the flows over small repository interfaces.
  - Repositories: Postgres for credentials, Redis for login throttling.
  - Security: bcrypt password hashes and HS256 JWTs signed with two
    independent secrets ([sec.TokenService]).

A session is represented entirely by the single nullable refresh-token slot
on the user record: storing a new token implicitly invalidates the previous
one, so each account has at most one live session.
*/
package auth

import (
	"time"

	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

// # Domain Entities

// User is the credential and identity record behind every account.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role   `json:"role"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`

	// RefreshToken is the single currently-valid refresh token, or nil when
	// the account has no live session. Omitted from JSON for security.
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the client-safe projection returned by the auth endpoints.
// It never carries the password hash or the stored refresh token.
type PublicUser struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      sec.Role `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail              = "email"
	FieldPassword           = "password"
	FieldFirstName          = "firstName"
	FieldLastName           = "lastName"
	FieldPatientID          = "patientId"
	FieldDateOfBirth        = "dateOfBirth"
	FieldGender             = "gender"
	FieldYearsOfExperience  = "yearsOfExperience"
	FieldSpecialization     = "specialization"
	FieldDepartment         = "department"
	FieldRegistrationNumber = "registrationNumber"
	FieldRefreshToken       = "refreshToken"
)
