// Package auth provides session token issuance and password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates a token that failed verification: bad
// signature, malformed payload, or past its expiry.
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims extends the registered JWT claims with the user ID the
// token was issued for.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenCodec issues and verifies signed session tokens. It is
// stateless: validity is determined purely by signature and expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a TokenCodec with the given signing secret and
// token lifetime.
func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// Issue produces a signed token binding userID with issue and expiry
// timestamps.
func (c *TokenCodec) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the token's signature and expiry and returns the
// embedded user ID. All failure modes collapse into ErrInvalidToken so
// callers cannot distinguish a forged token from an expired one.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &TokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// DecodeUnverified extracts the user ID from a token without checking
// its signature or expiry. Client-side use only: the server re-verifies
// every request, so this is a display convenience, never an
// authorization decision.
func DecodeUnverified(tokenString string) (string, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
