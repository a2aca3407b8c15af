// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/hamzahey/brainwave-api/internal/doctor"
	"github.com/hamzahey/brainwave-api/internal/patient"
	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
	"github.com/hamzahey/brainwave-api/pkg/uuid"
)

// Session is the result of a successful register, login or refresh: the
// public user projection plus the freshly minted token pair. The tokens
// travel to the browser as cookies; they are never persisted here beyond
// the user's single refresh-token slot.
type Session struct {
	User         PublicUser `json:"user"`
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
}

// Service orchestrates the authentication flows over the repository
// interfaces. All credential failures during login collapse into one
// generic Unauthorized error so responses never reveal whether an email
// is registered.
type Service struct {
	users      UserRepository
	enrollment EnrollmentRepository
	patients   PatientDirectory
	doctors    DoctorDirectory
	throttle   LoginThrottle
	tokens     *sec.TokenService
	logger     *slog.Logger
}

// NewService creates the authentication service.
func NewService(
	users UserRepository,
	enrollment EnrollmentRepository,
	patients PatientDirectory,
	doctors DoctorDirectory,
	throttle LoginThrottle,
	tokens *sec.TokenService,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:      users,
		enrollment: enrollment,
		patients:   patients,
		doctors:    doctors,
		throttle:   throttle,
		tokens:     tokens,
		logger:     logger,
	}
}

// errInvalidCredentials is the single message for every login failure mode.
var errInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// errInvalidRefresh covers both a bad signature and a rotated/stale token.
var errInvalidRefresh = apperr.Unauthorized("Invalid refresh token")

// # Registration

// RegisterPatientInput carries the self-service patient sign-up payload.
type RegisterPatientInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`

	PatientID        string                    `json:"patient_id"`
	DateOfBirth      string                    `json:"date_of_birth"`
	Gender           string                    `json:"gender"`
	Address          *patient.Address          `json:"address"`
	MedicalHistory   []patient.MedicalEntry    `json:"medical_history"`
	Allergies        []string                  `json:"allergies"`
	EmergencyContact *patient.EmergencyContact `json:"emergency_contact"`
}

// RegisterPatient creates a patient account: one user record and one patient
// profile in a single transaction, then opens a session for the new account.
func (s *Service) RegisterPatient(ctx context.Context, in RegisterPatientInput) (*Session, error) {
	email := normalizeEmail(in.Email)

	taken, err := s.patients.PatientIDExists(ctx, in.PatientID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if taken {
		return nil, apperr.Conflict("User already exists")
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RolePatient,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		IsActive:     true,
		CreatedAt:    now,
	}
	profile := &patient.Patient{
		ID:               uuid.New(),
		UserID:           user.ID,
		PatientID:        strings.TrimSpace(in.PatientID),
		DateOfBirth:      in.DateOfBirth,
		Gender:           in.Gender,
		Address:          in.Address,
		MedicalHistory:   in.MedicalHistory,
		Allergies:        in.Allergies,
		EmergencyContact: in.EmergencyContact,
		CreatedAt:        now,
	}

	if err := s.enrollment.CreatePatientAccount(ctx, user, profile); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "patient registered",
		slog.String("user_id", user.ID),
		slog.String("patient_id", profile.PatientID),
	)
	return s.openSession(ctx, user)
}

// RegisterDoctorInput carries the admin-driven doctor enrollment payload.
type RegisterDoctorInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`

	Specialization     string   `json:"specialization"`
	Department         string   `json:"department"`
	RegistrationNumber string   `json:"registration_number"`
	HospitalName       string   `json:"hospital_name"`
	Qualifications     []string `json:"qualifications"`
	YearsOfExperience  int      `json:"years_of_experience"`
}

// RegisterDoctor creates a doctor account on behalf of an administrator.
// It never opens a session: the admin stays logged in as themselves and the
// new doctor signs in with the issued credentials.
func (s *Service) RegisterDoctor(ctx context.Context, in RegisterDoctorInput) (*User, *doctor.Doctor, error) {
	email := normalizeEmail(in.Email)

	taken, err := s.doctors.RegistrationNumberExists(ctx, in.RegistrationNumber)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	if taken {
		return nil, nil, apperr.Conflict("Doctor with this registration number already exists")
	}
	if err := s.ensureEmailFree(ctx, email); err != nil {
		return nil, nil, err
	}

	hash, err := sec.HashPassword(in.Password)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         sec.RoleDoctor,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		IsActive:     true,
		CreatedAt:    now,
	}
	profile := &doctor.Doctor{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Specialization:     strings.TrimSpace(in.Specialization),
		Department:         strings.TrimSpace(in.Department),
		RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
		HospitalName:       strings.TrimSpace(in.HospitalName),
		Qualifications:     in.Qualifications,
		YearsOfExperience:  in.YearsOfExperience,
		CreatedAt:          now,
	}

	if err := s.enrollment.CreateDoctorAccount(ctx, user, profile); err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "doctor registered",
		slog.String("user_id", user.ID),
		slog.String("registration_number", profile.RegistrationNumber),
	)
	return user, profile, nil
}

// # Login

// LoginInput carries the credential payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and opens a session. Unknown email, wrong
// password and deactivated account all produce the same error, and each
// failure counts against the caller's throttle budget.
func (s *Service) Login(ctx context.Context, in LoginInput, clientKey string) (*Session, error) {
	blocked, err := s.throttle.TooManyAttempts(ctx, clientKey)
	if err != nil {
		// Throttle outage must not lock everyone out.
		s.logger.WarnContext(ctx, "login throttle unavailable", slog.Any("error", err))
	}
	if blocked {
		return nil, apperr.RateLimited("Too many login attempts. Try again later.")
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, s.failLogin(ctx, clientKey)
		}
		return nil, apperr.Internal(err)
	}
	if !user.IsActive {
		return nil, s.failLogin(ctx, clientKey)
	}
	if !sec.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, s.failLogin(ctx, clientKey)
	}

	if err := s.throttle.Reset(ctx, clientKey); err != nil {
		s.logger.WarnContext(ctx, "resetting login throttle", slog.Any("error", err))
	}
	return s.openSession(ctx, user)
}

// failLogin records a throttle failure and returns the generic error.
func (s *Service) failLogin(ctx context.Context, clientKey string) error {
	if err := s.throttle.RecordFailure(ctx, clientKey); err != nil {
		s.logger.WarnContext(ctx, "recording login failure", slog.Any("error", err))
	}
	return errInvalidCredentials
}

// # Refresh and Logout

// Refresh validates a refresh token against both its signature and the
// stored copy, then rotates the session to a fresh token pair. A token that
// verifies but no longer matches the stored slot is rejected: rotation and
// logout revoke tokens by overwriting the slot, not by a blacklist.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, errInvalidRefresh
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, errInvalidRefresh
		}
		return nil, apperr.Internal(err)
	}
	if user.ID != claims.UserID {
		return nil, errInvalidRefresh
	}

	return s.openSession(ctx, user)
}

// Logout closes the session identified by the refresh token. It is
// idempotent: an empty, unknown or already-revoked token is not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return apperr.Internal(err)
	}

	if err := s.users.ClearRefreshToken(ctx, user.ID); err != nil {
		return apperr.Internal(err)
	}
	s.logger.InfoContext(ctx, "session closed", slog.String("user_id", user.ID))
	return nil
}

// CheckAuth re-fetches the authenticated user so the response reflects the
// current database state, not the (up to an hour old) token claims.
func (s *Service) CheckAuth(ctx context.Context, userID string) (*User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Unauthorized("Invalid session")
		}
		return nil, apperr.Internal(err)
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("Invalid session")
	}
	return user, nil
}

// # Helpers

// openSession mints a token pair for the user and stores the refresh token,
// displacing any previous session.
func (s *Service) openSession(ctx context.Context, user *User) (*Session, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.users.StoreRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, apperr.Internal(err)
	}
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.logger.WarnContext(ctx, "touching last login", slog.Any("error", err))
	}

	return &Session{
		User:         user.Public(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// ensureEmailFree returns a Conflict error when the email is already taken.
func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return apperr.Conflict("User already exists")
	case errors.Is(err, ErrNotFound):
		return nil
	default:
		return apperr.Internal(err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
