// Package auth implements credential handling: password hashing, JWT
// issuance and verification, and the middleware that gates API routes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the JWT payload. UserID is the only application claim; everything
// else rides in RegisteredClaims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWT signs and verifies HS256 tokens with a shared secret.
type JWT struct {
	secret   []byte
	lifetime time.Duration
}

func NewJWT(secret string, lifetime time.Duration) *JWT {
	return &JWT{secret: []byte(secret), lifetime: lifetime}
}

// Issue creates a signed token for userID that expires after the configured
// lifetime.
func (j *JWT) Issue(userID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Parse verifies the token's signature and expiry and returns the embedded
// user ID. Any failure, including a non-HMAC signing method, yields
// ErrInvalidToken.
func (j *JWT) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
