// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/ctxutil"
	"github.com/hamzahey/brainwave-api/internal/platform/middleware"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

// stubVerifier accepts exactly one token string and returns fixed claims.
type stubVerifier struct {
	validToken string
	claims     *sec.AuthClaims
}

func (s *stubVerifier) VerifyAccessToken(tokenString string) (*sec.AuthClaims, error) {
	if tokenString == s.validToken {
		return s.claims, nil
	}
	return nil, sec.ErrInvalidToken
}

func newVerifier(role sec.Role) *stubVerifier {
	return &stubVerifier{
		validToken: "valid-token",
		claims:     &sec.AuthClaims{UserID: "user-123", Role: role},
	}
}

// okHandler records the claims it saw and answers 200.
func okHandler(seen **sec.AuthClaims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			*seen = ctxutil.GetAuthUser(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate_Cookie verifies that a valid access-token cookie
authenticates the request and injects claims into the context.
*/
func TestAuthenticate_Cookie(t *testing.T) {
	var seen *sec.AuthClaims
	handler := middleware.Authenticate(newVerifier(sec.RolePatient))(okHandler(&seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "valid-token"})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-123", seen.UserID)
	assert.Equal(t, sec.RolePatient, seen.Role)
}

/*
TestAuthenticate_BearerFallback verifies the Authorization header works when
no cookie is present.
*/
func TestAuthenticate_BearerFallback(t *testing.T) {
	var seen *sec.AuthClaims
	handler := middleware.Authenticate(newVerifier(sec.RoleDoctor))(okHandler(&seen))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer valid-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, sec.RoleDoctor, seen.Role)
}

/*
TestAuthenticate_CookieWins verifies the extraction order: when both
credential sources are present, only the cookie decides the outcome. A bad
cookie fails the request even when the header token is valid.
*/
func TestAuthenticate_CookieWins(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(sec.RolePatient))(okHandler(nil))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "stale-token"})
	request.Header.Set(constants.HeaderAuthorization, "Bearer valid-token")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_INVALID")
}

/*
TestAuthenticate_MissingCredential verifies a bare request is rejected
with the AUTH_REQUIRED code, never passed through as anonymous.
*/
func TestAuthenticate_MissingCredential(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(sec.RolePatient))(okHandler(nil))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "AUTH_REQUIRED")
}

/*
TestAuthenticate_InvalidToken verifies bad tokens are rejected with the
TOKEN_INVALID code.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(sec.RolePatient))(okHandler(nil))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Bearer garbage")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "TOKEN_INVALID")
}

/*
TestAuthenticate_MalformedHeader verifies non-Bearer Authorization values
are rejected.
*/
func TestAuthenticate_MalformedHeader(t *testing.T) {
	handler := middleware.Authenticate(newVerifier(sec.RolePatient))(okHandler(nil))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestRequireRole verifies set-membership authorization: allowed roles pass,
everything else gets 403 regardless of "seniority".
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       sec.Role
		allowed    []sec.Role
		wantStatus int
	}{
		{"admin_allowed", sec.RoleAdmin, []sec.Role{sec.RoleAdmin}, http.StatusOK},
		{"doctor_denied_admin_route", sec.RoleDoctor, []sec.Role{sec.RoleAdmin}, http.StatusForbidden},
		{"admin_denied_patient_route", sec.RoleAdmin, []sec.Role{sec.RolePatient}, http.StatusForbidden},
		{"multi_role_set", sec.RoleDoctor, []sec.Role{sec.RoleAdmin, sec.RoleDoctor}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := newVerifier(tt.role)
			handler := middleware.Authenticate(verifier)(
				middleware.RequireRole(tt.allowed...)(okHandler(nil)),
			)

			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderAuthorization, "Bearer valid-token")
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

/*
TestRequireRole_NoIdentity verifies the role gate rejects a request that
somehow skipped authentication.
*/
func TestRequireRole_NoIdentity(t *testing.T) {
	handler := middleware.RequireRole(sec.RoleAdmin)(okHandler(nil))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}
