package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nohlan/stayhub/internal/infrastructure/security"
	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager, err := security.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := manager.Issue("user-1", true)
	require.NoError(t, err)

	subject, claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.True(t, claims.IsAdmin)
}

func TestTokenManager_RejectsBadInput(t *testing.T) {
	manager, err := security.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := manager.Verify("not-a-token")
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := security.NewTokenManager("other-secret", time.Hour)
		require.NoError(t, err)
		token, err := other.Issue("user-1", false)
		require.NoError(t, err)

		_, _, err = manager.Verify(token)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := security.NewTokenManager("test-secret", -time.Minute)
		require.NoError(t, err)
		token, err := expired.Issue("user-1", false)
		require.NoError(t, err)

		_, _, err = manager.Verify(token)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
	})
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := security.NewTokenManager("", time.Hour)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher := security.NewBcryptHasher()

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, hasher.Verify("s3cret", hash))
	assert.False(t, hasher.Verify("wrong", hash))
}
