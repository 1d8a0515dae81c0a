package controller

import (
	"context"
	"net/http"
	"strings"
	"targets/pkg/serrors"
)

// Authenticator validates a bearer token and returns a context enriched with
// the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (context.Context, error)
}

// WithBearerAuth returns a middleware that requires an "Authorization: Bearer"
// header accepted by auth. Rejected requests receive 401 Unauthorized.
func WithBearerAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				WriteError(ctx, w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

				return
			}

			ctx, err := auth.Authenticate(ctx, strings.TrimSpace(token))
			if err != nil {
				WriteError(r.Context(), w, err)

				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
