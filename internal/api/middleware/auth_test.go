package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/api/middleware"
	"github.com/nohlan/stayhub/internal/domain/policy"
	"github.com/nohlan/stayhub/internal/infrastructure/security"
)

func newAuth(t *testing.T) (*middleware.Auth, *security.TokenManager) {
	t.Helper()
	tokens, err := security.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return middleware.NewAuth(tokens), tokens
}

func TestAuth_Require(t *testing.T) {
	auth, tokens := newAuth(t)

	var got policy.Principal
	handler := auth.Require(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token attaches the principal", func(t *testing.T) {
		token, err := tokens.Issue("user-1", true)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", got.ID)
		assert.True(t, got.IsAdmin)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Basic abc123")
		w := httptest.NewRecorder()

		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := tokens.Issue("user-1", false)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		w := httptest.NewRecorder()

		handler(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
