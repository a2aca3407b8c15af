// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package middleware

import (
	"net/http"
	"strings"

	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	"github.com/hamzahey/brainwave-api/internal/platform/constants"
	"github.com/hamzahey/brainwave-api/internal/platform/ctxutil"
	"github.com/hamzahey/brainwave-api/internal/platform/respond"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate extracts and verifies the access token guarding a route.
//
// # Flow
//  1. Look for the http-only access-token cookie (browser clients).
//  2. Fall back to 'Authorization: Bearer <token>' (API clients). The chain
//     is ordered: the cookie wins when both are present, so exactly one
//     credential source decides the outcome.
//  3. If neither is present, reject with 401 — the request never proceeds
//     as anonymous.
//  4. Verify the token; expired or malformed tokens reject with 401 under a
//     distinct code (observability), identical in effect.
//  5. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// This middleware never attempts a refresh; refreshing is an explicit
// client-driven call to the refresh endpoint.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Credential extraction (cookie first, header second) ────────
			tokenString := ""
			if cookie, err := request.Cookie(constants.AccessTokenCookieName); err == nil && cookie.Value != "" {
				tokenString = cookie.Value
			} else if authHeader := request.Header.Get(constants.HeaderAuthorization); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
					respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
					return
				}
				tokenString = parts[1]
			}

			// ── 2. Absent credential ──────────────────────────────────────────
			if tokenString == "" {
				respond.Error(writer, request, &apperr.AppError{
					Code:       "AUTH_REQUIRED",
					Message:    "Authentication required",
					HTTPStatus: http.StatusUnauthorized,
				})
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(tokenString)
			if err != nil {
				respond.Error(writer, request, &apperr.AppError{
					Code:       "TOKEN_INVALID",
					Message:    "Invalid or expired token",
					HTTPStatus: http.StatusUnauthorized,
				})
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole blocks requests whose authenticated role is not in the allowed set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.AuthClaims] exists in context; a missing identity is
//     rejected with 403 (Authenticate normally rejects it first).
//  2. Check set membership of the role — no hierarchy, no inheritance.
//  3. If not a member, abort with HTTP 403 Forbidden; the handler never runs.
func RequireRole(roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetAuthUser(request.Context())

			// ── 1. Identity Check ─────────────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Forbidden("Access denied"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !claims.Role.OneOf(roles...) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
