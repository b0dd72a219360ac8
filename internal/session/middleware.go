// Copyright (c) 2026 Aurastream. All rights reserved.

package session

import (
	"net/http"

	"github.com/aurastream/api/internal/platform/apperr"
	"github.com/aurastream/api/internal/platform/ctxutil"
	"github.com/aurastream/api/internal/platform/respond"
)

// # Identity Resolution Middleware

// RequireIdentity resolves the request's verified claims into live account
// and profile records and injects the [Identity] into the context.
//
// It must run after the platform's Authenticate middleware. Requests without
// claims are rejected; dangling account or profile IDs report 404 with the
// historical messages ("User not found", "Profile not found").
func RequireIdentity(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized - No token provided"))
				return
			}

			identity, err := service.Resolve(request.Context(), claims)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			ctx := WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequiredIdentity returns the resolved identity or an Unauthorized error.
//
// A convenience for handlers mounted under [RequireIdentity]; the error path
// only fires if the middleware was accidentally omitted.
func RequiredIdentity(request *http.Request) (*Identity, error) {
	identity := IdentityFrom(request.Context())
	if identity == nil {
		return nil, apperr.Unauthorized("Unauthorized - No token provided")
	}
	return identity, nil
}

// RequiredProfileIdentity returns the resolved identity and insists that a
// viewer profile is selected. Profile-scoped features (playback checkpoints,
// catalog search) cannot operate on an account-only session.
func RequiredProfileIdentity(request *http.Request) (*Identity, error) {
	identity, err := RequiredIdentity(request)
	if err != nil {
		return nil, err
	}
	if !identity.HasProfile() {
		return nil, apperr.Unauthorized("Unauthorized - No profile selected")
	}
	return identity, nil
}
