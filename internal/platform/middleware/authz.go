// Copyright (c) 2026 Aurastream. All rights reserved.

package middleware

import (
	"errors"
	"net/http"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/constants"
	"github.com/aurastream/api/internal/platform/ctxutil"
	"github.com/aurastream/api/internal/platform/respond"
	"github.com/aurastream/api/internal/platform/sec"
)

// # Authentication

// Authenticate reads the session cookie, verifies the embedded JWT, and
// injects the decoded claims into the request context.
//
// Requests without a cookie pass through anonymously; a handler that needs an
// identity must be guarded with [RequireAuth]. A cookie that is present but
// invalid always fails the request, so a stale token can never masquerade as
// an anonymous visitor.
func Authenticate(tokens *sec.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				// Anonymous request; downstream guards decide whether that is acceptable.
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := tokens.VerifyToken(cookie.Value)
			if err != nil {
				if errors.Is(err, sec.ErrTokenExpired) {
					respond.Error(writer, request, apperr.Unauthorized("Unauthorized - Token expired"))
					return
				}
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized - Invalid token"))
				return
			}

			ctx := ctxutil.WithClaims(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that carry no verified session claims.
//
// It only checks that a token was presented and verified; resolving the claims
// against live account and profile records is the session layer's job.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetClaims(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Unauthorized - No token provided"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
