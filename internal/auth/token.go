package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// wrong issuer or audience, malformed input.
var ErrInvalidToken = errors.New("invalid token")

// Claims binds a token to a user identity.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// TokenCodec signs and verifies compact expiring tokens carrying a user
// identity claim. Tokens are stateless; expiry is the only invalidation.
type TokenCodec struct {
	secret   []byte
	issuer   string
	tokenTTL time.Duration
}

// NewTokenCodec builds a codec. The issuer string doubles as the audience
// tag, matching the application name.
func NewTokenCodec(secret string, issuer string, tokenTTL time.Duration) *TokenCodec {
	if tokenTTL == 0 {
		tokenTTL = time.Hour
	}
	return &TokenCodec{
		secret:   []byte(secret),
		issuer:   issuer,
		tokenTTL: tokenTTL,
	}
}

// Issue signs a token for the given user id and email.
func (c *TokenCodec) Issue(userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
		},
		Email: email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, issuer and audience, and returns the
// embedded claims. Any failure maps to ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.issuer),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
