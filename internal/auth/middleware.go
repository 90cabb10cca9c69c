package auth

import (
	"context"
	"net/http"
	"strings"

	"quizhub/internal/api"
	"quizhub/internal/models"
	"quizhub/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware validates the bearer token and puts the caller identity
// into the request context. Requests without a valid token never reach
// a handler.
func Middleware(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Error(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				api.Error(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			identity, err := tokens.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a handler on the admin role. It expects Middleware
// to have run first.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			api.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if identity.Role != models.RoleAdmin {
			api.Error(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	return identity, ok
}
