package http

import (
	"net/http"
	"strings"

	"github.com/stockpile/backend/internal/auth"
	"github.com/stockpile/backend/internal/http/respond"
)

// Authenticator parses the bearer token and attaches the actor to the request
// context. Requests without a valid token are rejected.
func Authenticator(tokens *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "authentication required")
				return
			}

			actor, err := tokens.ParseToken(token)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), actor)))
		})
	}
}

// AdminOnly gates a route subtree to admin actors. Must run after
// Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFromContext(r.Context())
		if !ok {
			respond.Message(w, http.StatusUnauthorized, "authentication required")
			return
		}

		if !actor.IsAdmin() {
			respond.Message(w, http.StatusForbidden, "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
