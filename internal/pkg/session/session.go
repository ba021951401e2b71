// Package session issues and verifies the HS256 tokens that identify a
// signed-in principal.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medconnect/appointments/internal/core/domain"
)

// CookieName is the cookie that carries the token for browser clients.
const CookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token for p that expires after ttl.
func Issue(secret string, p domain.Principal, ttl time.Duration, now time.Time) (string, error) {
	c := claims{
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the principal it was issued for.
func Parse(secret, token string) (domain.Principal, error) {
	var c claims
	tkn, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid || c.Subject == "" {
		return domain.Principal{}, ErrInvalidToken
	}
	return domain.Principal{ID: c.Subject, Email: c.Email}, nil
}
