package security

import (
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

const tokenIssuer = "stayhub"

// AccessClaims are the custom claims carried by an access token.
type AccessClaims struct {
	IsAdmin bool `json:"is_admin"`
}

// TokenManager issues and verifies HMAC-signed access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager. The secret must be non-empty.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, apperrors.NewInternalError("token secret is not configured", nil)
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs an access token for the given subject.
func (m *TokenManager) Issue(subject string, isAdmin bool) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: m.secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", apperrors.NewInternalError("failed to create token signer", err)
	}

	now := time.Now()
	claims := jwt.Claims{
		Issuer:   tokenIssuer,
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token, err := jwt.Signed(signer).
		Claims(claims).
		Claims(AccessClaims{IsAdmin: isAdmin}).
		Serialize()
	if err != nil {
		return "", apperrors.NewInternalError("failed to sign token", err)
	}

	return token, nil
}

// Verify parses and validates a token, returning the subject and claims.
// Any failure maps to UNAUTHORIZED without detail about which check failed.
func (m *TokenManager) Verify(token string) (string, AccessClaims, error) {
	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", AccessClaims{}, apperrors.NewUnauthorizedError("invalid token")
	}

	var std jwt.Claims
	var custom AccessClaims
	if err := parsed.Claims(m.secret, &std, &custom); err != nil {
		return "", AccessClaims{}, apperrors.NewUnauthorizedError("invalid token")
	}

	err = std.Validate(jwt.Expected{
		Issuer: tokenIssuer,
		Time:   time.Now(),
	})
	if err != nil {
		return "", AccessClaims{}, apperrors.NewUnauthorizedError("invalid token")
	}

	return std.Subject, custom, nil
}
