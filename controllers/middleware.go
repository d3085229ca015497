package controllers

import (
	"context"
	"net/http"
	"strings"

	"campuslink_server/models"
	"campuslink_server/services"
)

type contextKey string

const identityContextKey contextKey = "sessionIdentity"

// RequireAuth wraps a handler with bearer-token session validation. Missing or
// unknown tokens are rejected with 401 before the handler runs.
func RequireAuth(sessions *services.SessionService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := sessions.Resolve(BearerToken(r))
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next(w, r.WithContext(ctx))
	}
}

// BearerToken extracts the session token from the Authorization header
func BearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// IdentityFromRequest returns the identity stored by RequireAuth
func IdentityFromRequest(r *http.Request) (models.SessionIdentity, bool) {
	identity, ok := r.Context().Value(identityContextKey).(models.SessionIdentity)
	return identity, ok
}
