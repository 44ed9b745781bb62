package middleware

import (
	"context"
	"net/http"

	"github.com/gatherly/server/internal/api/problem"
	"github.com/gatherly/server/internal/auth"
	"github.com/gatherly/server/internal/domain/users"
)

const userKey contextKey = "authenticated_user"

// TokenVerifier resolves a bearer token to the user it names.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*users.User, error)
}

// BearerAuth authenticates requests with an Authorization: Bearer header.
// Missing, malformed, expired and orphaned tokens all produce the same
// 401 so callers cannot probe which failure occurred.
func BearerAuth(verifier TokenVerifier, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank", "Unauthorized", err, env)
				return
			}

			user, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, "about:blank", "Unauthorized", err, env)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, or nil outside
// BearerAuth-protected routes.
func UserFromContext(ctx context.Context) *users.User {
	if user, ok := ctx.Value(userKey).(*users.User); ok {
		return user
	}
	return nil
}
