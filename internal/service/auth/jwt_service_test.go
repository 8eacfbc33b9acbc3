package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/focus-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisasecretkeythatis32charslong!!"

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTestJWTService(testSecret, "focus-api", time.Hour, func() time.Time { return now })
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "focus-api", claims.Issuer)
	assert.Equal(t, now, claims.IssuedAt.UTC())
	assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.UTC())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTestJWTService(testSecret, "focus-api", time.Hour, func() time.Time { return issuedAt })
	ctx := context.Background()

	valid, err := issuer.GenerateToken(ctx, 7)
	require.NoError(t, err)

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name     string
		verifier JWTService
		token    string
		want     error
	}{
		{
			name:     "expired",
			verifier: NewTestJWTService(testSecret, "focus-api", time.Hour, func() time.Time { return issuedAt.Add(3 * time.Hour) }),
			token:    valid,
			want:     ErrExpiredToken,
		},
		{
			name:     "wrong secret",
			verifier: NewTestJWTService("a-completely-different-secret-of-32+", "focus-api", time.Hour, func() time.Time { return issuedAt }),
			token:    valid,
			want:     ErrInvalidToken,
		},
		{
			name:     "wrong issuer",
			verifier: NewTestJWTService(testSecret, "someone-else", time.Hour, func() time.Time { return issuedAt }),
			token:    valid,
			want:     ErrInvalidToken,
		},
		{
			name:     "malformed",
			verifier: issuer,
			token:    "not.a.token",
			want:     ErrInvalidToken,
		},
		{
			name:     "not yet valid",
			verifier: issuer,
			token: sign(jwt.RegisteredClaims{
				Subject:   "7",
				Issuer:    "focus-api",
				NotBefore: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(2 * time.Hour)),
			}, jwt.SigningMethodHS256, []byte(testSecret)),
			want: ErrTokenNotYetValid,
		},
		{
			name:     "non numeric subject",
			verifier: issuer,
			token: sign(jwt.RegisteredClaims{
				Subject:   "alice",
				Issuer:    "focus-api",
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			}, jwt.SigningMethodHS256, []byte(testSecret)),
			want: ErrInvalidSubject,
		},
		{
			name:     "missing expiry",
			verifier: issuer,
			token: sign(jwt.RegisteredClaims{
				Subject: "7",
				Issuer:  "focus-api",
			}, jwt.SigningMethodHS256, []byte(testSecret)),
			want: ErrInvalidToken,
		},
		{
			name:     "unexpected signing method",
			verifier: issuer,
			token: sign(jwt.RegisteredClaims{
				Subject:   "7",
				Issuer:    "focus-api",
				ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			}, jwt.SigningMethodHS512, []byte(testSecret)),
			want: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := tt.verifier.ValidateToken(ctx, tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
