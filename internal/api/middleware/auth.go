package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/infrastructure/security"
)

type contextKey string

const principalKey contextKey = "principal"

// Auth validates Authorization headers and attaches the acting
// principal to the request context.
type Auth struct {
	tokens *security.TokenManager
}

// NewAuth creates the auth middleware.
func NewAuth(tokens *security.TokenManager) *Auth {
	return &Auth{tokens: tokens}
}

// Require wraps a handler that needs an authenticated principal. A
// missing or invalid bearer token short-circuits with 401.
func (m *Auth) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := m.principalFromHeader(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondUnauthorized(w)
			return
		}
		next(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	}
}

func (m *Auth) principalFromHeader(r *http.Request) (policy.Principal, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return policy.Principal{}, false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return policy.Principal{}, false
	}

	subject, claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return policy.Principal{}, false
	}

	return policy.Principal{ID: subject, IsAdmin: claims.IsAdmin}, true
}

// WithPrincipal returns a context carrying the acting principal.
func WithPrincipal(ctx context.Context, principal policy.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the acting principal attached by Require.
func PrincipalFromContext(ctx context.Context) (policy.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(policy.Principal)
	return principal, ok
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}
