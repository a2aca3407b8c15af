// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzahey/brainwave-api/internal/auth"
	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/middleware"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
	"github.com/hamzahey/brainwave-api/pkg/uuid"
)

// newRouter mounts the auth routes exactly as the API server does, with the
// real authentication middleware in front of the protected group.
func newRouter(f *fixture) chi.Router {
	cookies := auth.NewCookieWriter(time.Hour, 7*24*time.Hour, false)
	handler := auth.NewHandler(f.service, cookies)

	router := chi.NewRouter()
	router.Mount("/api/auth", handler.Routes(
		middleware.Authenticate(f.tokens),
		middleware.RequireRole(sec.RoleAdmin),
	))
	return router
}

func postJSON(t *testing.T, router http.Handler, path string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		request.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func cookieByName(t *testing.T, recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range recorder.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set on response", name)
	return nil
}

// seedAdmin inserts an administrator directly into the store and mints an
// access token for them.
func seedAdmin(t *testing.T, f *fixture) (adminID, accessToken string) {
	t.Helper()

	hash, err := sec.HashPassword("adminpassword")
	require.NoError(t, err)

	admin := &auth.User{
		ID:           uuid.New(),
		Email:        "admin@brainwave.health",
		PasswordHash: hash,
		Role:         sec.RoleAdmin,
		FirstName:    "System",
		LastName:     "Administrator",
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	f.store.users[admin.ID] = admin

	token, err := f.tokens.GenerateAccessToken(admin.ID, sec.RoleAdmin)
	require.NoError(t, err)
	return admin.ID, token
}

/*
TestHTTP_Login_CookiePolicy verifies every attribute of the two session
cookies: names, HttpOnly, SameSite=Lax, path scope and lifetimes matching
the token TTLs.
*/
func TestHTTP_Login_CookiePolicy(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	_, err := f.service.RegisterPatient(context.Background(), patientInput())
	require.NoError(t, err)

	recorder := postJSON(t, router, "/api/auth/login", auth.LoginInput{
		Email:    "jane.doe@example.com",
		Password: "supersecret",
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	access := cookieByName(t, recorder, constants.AccessTokenCookieName)
	refresh := cookieByName(t, recorder, constants.RefreshTokenCookieName)

	for _, c := range []*http.Cookie{access, refresh} {
		assert.True(t, c.HttpOnly, "cookie %s must be http-only", c.Name)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
		assert.Equal(t, "/", c.Path)
		assert.NotEmpty(t, c.Value)
	}
	assert.Equal(t, int(time.Hour.Seconds()), access.MaxAge)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refresh.MaxAge)
}

/*
TestHTTP_Register_SetsSession verifies sign-up answers 201 with the public
projection only and already carries both cookies.
*/
func TestHTTP_Register_SetsSession(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postJSON(t, router, "/api/auth/register", patientInput())
	require.Equal(t, http.StatusCreated, recorder.Code)

	// 1. Cookies present
	cookieByName(t, recorder, constants.AccessTokenCookieName)
	cookieByName(t, recorder, constants.RefreshTokenCookieName)

	// 2. Body never leaks the hash or the raw tokens
	body := recorder.Body.String()
	assert.Contains(t, body, "jane.doe@example.com")
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "refresh_token")
}

/*
TestHTTP_Register_Validation verifies the field-level validation surface.
*/
func TestHTTP_Register_Validation(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	in := patientInput()
	in.Email = "not-an-email"
	in.Password = "short"

	recorder := postJSON(t, router, "/api/auth/register", in)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
}

/*
TestHTTP_RefreshToken verifies the cookie-driven refresh: the response
carries a new pair and the cookie value actually changes.
*/
func TestHTTP_RefreshToken(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	session, err := f.service.RegisterPatient(context.Background(), patientInput())
	require.NoError(t, err)

	recorder := postJSON(t, router, "/api/auth/refresh-token", struct{}{}, &http.Cookie{
		Name:  constants.RefreshTokenCookieName,
		Value: session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	rotated := cookieByName(t, recorder, constants.RefreshTokenCookieName)
	assert.NotEqual(t, session.RefreshToken, rotated.Value)
}

/*
TestHTTP_RefreshToken_Missing verifies a bare refresh call is a 400, not
a 401: there was nothing to validate.
*/
func TestHTTP_RefreshToken_Missing(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	recorder := postJSON(t, router, "/api/auth/refresh-token", struct{}{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHTTP_Logout verifies the protected logout clears both cookies.
*/
func TestHTTP_Logout(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	session, err := f.service.RegisterPatient(context.Background(), patientInput())
	require.NoError(t, err)

	recorder := postJSON(t, router, "/api/auth/logout", struct{}{},
		&http.Cookie{Name: constants.AccessTokenCookieName, Value: session.AccessToken},
		&http.Cookie{Name: constants.RefreshTokenCookieName, Value: session.RefreshToken},
	)
	require.Equal(t, http.StatusOK, recorder.Code)

	// Both cookies instructed to expire
	access := cookieByName(t, recorder, constants.AccessTokenCookieName)
	refresh := cookieByName(t, recorder, constants.RefreshTokenCookieName)
	assert.Negative(t, access.MaxAge)
	assert.Negative(t, refresh.MaxAge)

	// And the stored session is gone
	assert.Nil(t, f.store.users[session.User.ID].RefreshToken)
}

/*
TestHTTP_Check verifies the session probe in both directions.
*/
func TestHTTP_Check(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	session, err := f.service.RegisterPatient(context.Background(), patientInput())
	require.NoError(t, err)

	// 1. With a valid access cookie
	request := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: session.AccessToken})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"authenticated":true`)

	// 2. Without credentials the middleware rejects before the handler
	request = httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHTTP_RegisterDoctor_AdminOnly verifies the role gate on doctor
enrollment and that a successful enrollment never touches the admin's
cookies.
*/
func TestHTTP_RegisterDoctor_AdminOnly(t *testing.T) {
	f := newFixture(t)
	router := newRouter(f)

	// 1. A patient token is rejected with 403
	session, err := f.service.RegisterPatient(context.Background(), patientInput())
	require.NoError(t, err)

	recorder := postJSON(t, router, "/api/auth/register-doctor", doctorInput(),
		&http.Cookie{Name: constants.AccessTokenCookieName, Value: session.AccessToken})
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 2. No token at all is rejected with 401
	recorder = postJSON(t, router, "/api/auth/register-doctor", doctorInput())
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 3. An admin succeeds, and the response sets no cookies
	_, adminToken := seedAdmin(t, f)
	recorder = postJSON(t, router, "/api/auth/register-doctor", doctorInput(),
		&http.Cookie{Name: constants.AccessTokenCookieName, Value: adminToken})

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Empty(t, recorder.Result().Cookies())
	assert.Contains(t, recorder.Body.String(), "MC-12345")
}
