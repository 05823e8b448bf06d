package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkordes/driverlog/backend/internal/domain"
)

// Authenticator resolves an opaque bearer token to its user.
// Satisfied by *service.AuthService; defined here (in the consumer package)
// so the middleware can be tested with a stub.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

type ctxKey int

const (
	userCtxKey ctxKey = iota
	tokenCtxKey
)

// NewBearerAuth returns a middleware that requires a valid bearer token on
// every request. The resolved user and the raw token are placed in the
// request context; missing, malformed, expired, or revoked tokens all get
// a 401 with the same body, so callers learn nothing about why.
func NewBearerAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(raw, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userCtxKey, user)
			ctx = context.WithValue(ctx, tokenCtxKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user stored by NewBearerAuth.
// The second return is false on requests that never passed the middleware.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userCtxKey).(domain.User)
	return user, ok
}

// CurrentToken returns the raw bearer token stored by NewBearerAuth.
// Used by the logout handler to revoke the calling token.
func CurrentToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey).(string)
	return token, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": "unauthorized", "message": "missing or invalid token"},
	})
}
