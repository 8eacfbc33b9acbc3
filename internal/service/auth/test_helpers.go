package auth

import (
	"time"
)

// NewTestJWTService returns a JWTService whose clock is fixed by now.
// It is intended for tests in this and other packages.
func NewTestJWTService(secret, issuer string, lifetime time.Duration, now func() time.Time) JWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		issuer:        issuer,
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     2 * time.Minute,
	}
}
