package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Verification failures are collapsed into two sentinels so callers
// never have to inspect the underlying library's error chain.
var (
	// ErrExpired means the token was well-formed and correctly signed
	// but its expiry time has passed.
	ErrExpired = errors.New("token expired")

	// ErrMalformed covers every other decode failure: bad signature,
	// corrupt payload, wrong signing method.
	ErrMalformed = errors.New("token malformed")
)

// Codec signs and verifies session tokens with a process-wide shared
// secret using HS256. The secret is injected at construction and never
// read from ambient state.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given secret
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign produces a signed token string embedding the claims plus
// issue/expiry times computed from ttl. It does not fail for
// well-formed claims and a non-nil secret.
func (c *Codec) Sign(claims Claims, ttl time.Duration) (string, error) {
	now := NowTimeFunc()
	claims.IssuedAt = jwtlib.NewNumericDate(now)
	claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(ttl))

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, &claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify decodes the token and checks its signature and expiry. It
// returns ErrExpired past the expiry time and ErrMalformed for any
// other failure.
func (c *Codec) Verify(rawToken string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	).ParseWithClaims(rawToken, claims, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	})

	switch {
	case err == nil && parsed.Valid:
		return claims, nil
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return nil, ErrExpired
	default:
		return nil, ErrMalformed
	}
}
