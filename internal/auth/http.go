// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzahey/brainwave-api/internal/patient"
	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/middleware"
	requestutil "github.com/hamzahey/brainwave-api/internal/platform/request"
	"github.com/hamzahey/brainwave-api/internal/platform/respond"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
	"github.com/hamzahey/brainwave-api/internal/platform/validate"
)

// Handler exposes the authentication flows over HTTP. Every flow that mints
// or revokes tokens also writes the corresponding cookies, so browser
// clients never touch the raw token strings.
type Handler struct {
	service *Service
	cookies *CookieWriter
}

// NewHandler creates the authentication HTTP handler.
func NewHandler(service *Service, cookies *CookieWriter) *Handler {
	return &Handler{service: service, cookies: cookies}
}

// Routes builds the /auth route tree. authenticate guards the routes that
// need a valid access token; requireAdmin additionally restricts doctor
// enrollment to administrators.
func (h *Handler) Routes(authenticate, requireAdmin func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Post("/register", h.registerPatient)
	router.Post("/login", h.login)
	router.Post("/refresh-token", h.refresh)

	router.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Post("/logout", h.logout)
		protected.Get("/check", h.checkAuth)

		protected.With(requireAdmin).Post("/register-doctor", h.registerDoctor)
	})

	return router
}

// # Input Validation

// Validate checks the patient sign-up payload.
func (in *RegisterPatientInput) Validate() error {
	v := &validate.Validator{}
	v.Required(FieldEmail, in.Email).
		MaxLen(FieldEmail, in.Email, MaxEmailLength).
		Required(FieldPassword, in.Password).
		MinLen(FieldPassword, in.Password, MinPasswordLength).
		Required(FieldFirstName, in.FirstName).
		MaxLen(FieldFirstName, in.FirstName, MaxNameLength).
		Required(FieldLastName, in.LastName).
		MaxLen(FieldLastName, in.LastName, MaxNameLength).
		Required(FieldPatientID, in.PatientID).
		Date(FieldDateOfBirth, in.DateOfBirth)
	if in.Email != "" {
		v.Email(FieldEmail, in.Email)
	}
	if in.Gender != "" {
		v.OneOf(FieldGender, in.Gender, patient.AllGenders...)
	}
	return v.Err()
}

// Validate checks the doctor enrollment payload.
func (in *RegisterDoctorInput) Validate() error {
	v := &validate.Validator{}
	v.Required(FieldEmail, in.Email).
		MaxLen(FieldEmail, in.Email, MaxEmailLength).
		Required(FieldPassword, in.Password).
		MinLen(FieldPassword, in.Password, MinPasswordLength).
		Required(FieldFirstName, in.FirstName).
		Required(FieldLastName, in.LastName).
		Required(FieldSpecialization, in.Specialization).
		Required(FieldDepartment, in.Department).
		Required(FieldRegistrationNumber, in.RegistrationNumber).
		Custom(FieldYearsOfExperience, in.YearsOfExperience < 0, "Must not be negative")
	if in.Email != "" {
		v.Email(FieldEmail, in.Email)
	}
	return v.Err()
}

// Validate checks the credential payload. Format rules stay loose here:
// anything beyond presence is answered by the generic credentials error.
func (in *LoginInput) Validate() error {
	v := &validate.Validator{}
	v.Required(FieldEmail, in.Email).
		Required(FieldPassword, in.Password)
	return v.Err()
}

// # Handlers

type registerResponse struct {
	User PublicUser `json:"user"`
}

func (h *Handler) registerPatient(w http.ResponseWriter, r *http.Request) {
	var in RegisterPatientInput
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	session, err := h.service.RegisterPatient(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.cookies.Set(w, session.AccessToken, session.RefreshToken)
	respond.Created(w, registerResponse{User: session.User})
}

type registerDoctorResponse struct {
	User    PublicUser    `json:"user"`
	Profile doctorProfile `json:"profile"`
}

type doctorProfile struct {
	Specialization     string `json:"specialization"`
	Department         string `json:"department"`
	RegistrationNumber string `json:"registration_number"`
}

func (h *Handler) registerDoctor(w http.ResponseWriter, r *http.Request) {
	claims, err := requestutil.RequiredClaims(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if claims.Role != sec.RoleAdmin {
		respond.Error(w, r, apperr.Forbidden("Insufficient permissions"))
		return
	}

	var in RegisterDoctorInput
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	// No cookie writes here: the admin's own session stays untouched.
	user, profile, err := h.service.RegisterDoctor(r.Context(), in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Created(w, registerDoctorResponse{
		User: user.Public(),
		Profile: doctorProfile{
			Specialization:     profile.Specialization,
			Department:         profile.Department,
			RegistrationNumber: profile.RegistrationNumber,
		},
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.Validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	session, err := h.service.Login(r.Context(), in, clientKey(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.cookies.Set(w, session.AccessToken, session.RefreshToken)
	respond.OK(w, session)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	token := refreshTokenFrom(r)
	if token == "" {
		respond.Error(w, r, validate.RequiredError(FieldRefreshToken, "Refresh token is required"))
		return
	}

	session, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.cookies.Set(w, session.AccessToken, session.RefreshToken)
	respond.OK(w, session)
}

type logoutResponse struct {
	Message string `json:"message"`
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	err := h.service.Logout(r.Context(), refreshTokenFrom(r))

	// Cookies are cleared even when revocation fails: the client's session
	// ends either way.
	h.cookies.Clear(w)

	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, logoutResponse{Message: "Logged out successfully"})
}

type checkAuthResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *PublicUser `json:"user,omitempty"`
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	userID, err := requestutil.RequiredUserID(r)
	if err != nil {
		respond.JSON(w, http.StatusUnauthorized, respond.SuccessEnvelope{
			Data: checkAuthResponse{Authenticated: false},
		})
		return
	}

	user, err := h.service.CheckAuth(r.Context(), userID)
	if err != nil {
		respond.JSON(w, http.StatusUnauthorized, respond.SuccessEnvelope{
			Data: checkAuthResponse{Authenticated: false},
		})
		return
	}

	public := user.Public()
	respond.OK(w, checkAuthResponse{Authenticated: true, User: &public})
}

// # Request Helpers

// refreshTokenFrom reads the refresh token from its cookie, falling back to
// the JSON body for non-browser clients.
func refreshTokenFrom(r *http.Request) string {
	if cookie, err := r.Cookie(constants.RefreshTokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	var body refreshRequest
	if err := requestutil.DecodeJSON(r, &body); err != nil {
		return ""
	}
	return body.RefreshToken
}

// clientKey identifies the caller for login throttling.
func clientKey(r *http.Request) string {
	return middleware.RealIP(r)
}
