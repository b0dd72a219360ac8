// Copyright (c) 2026 Aurastream. All rights reserved.

package sec

import (
	"net/http"
	"time"

	"github.com/aurastream/api/internal/platform/constants"
)

// # Cookie Binding

// SessionCookie builds the session cookie carrying a signed token.
//
// HttpOnly and SameSite=Strict are always set; Secure is disabled only in
// development so local HTTP clients can authenticate. MaxAge mirrors the
// token's TTL class so the browser and the token expire together.
func SessionCookie(token string, timeToLive time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(timeToLive.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredSessionCookie builds a cookie that instructs the browser to drop the
// session cookie immediately. Used by logout, which always succeeds.
func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}
