// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package auth

import (
	"net/http"
	"time"

	"github.com/hamzahey/brainwave-api/internal/platform/constants"
)

// CookieWriter sets and clears the http-only token cookies. The browser is
// the only intended holder of the tokens, so both cookies are HttpOnly and
// scoped to the whole API path.
type CookieWriter struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

// NewCookieWriter creates a cookie writer. TTLs should match the token
// lifetimes so a cookie never outlives the token it carries. secure should
// be true everywhere except local development over plain HTTP.
func NewCookieWriter(accessTTL, refreshTTL time.Duration, secure bool) *CookieWriter {
	return &CookieWriter{
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		secure:     secure,
	}
}

// Set writes both token cookies on the response.
func (c *CookieWriter) Set(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, c.cookie(constants.AccessTokenCookieName, accessToken, c.accessTTL))
	http.SetCookie(w, c.cookie(constants.RefreshTokenCookieName, refreshToken, c.refreshTTL))
}

// Clear expires both token cookies. Safe to call whether or not the client
// ever held them.
func (c *CookieWriter) Clear(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(constants.AccessTokenCookieName, "", -time.Second))
	http.SetCookie(w, c.cookie(constants.RefreshTokenCookieName, "", -time.Second))
}

func (c *CookieWriter) cookie(name, value string, ttl time.Duration) *http.Cookie {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1 // Instructs the browser to delete the cookie.
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     constants.AuthCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
