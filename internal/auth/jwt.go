// Package auth issues and verifies the HS256 access tokens used by the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature, wrong
// algorithm, wrong issuer, expiry. Callers treat them all the same.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by an access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with a shared HMAC secret.
// Verification pins the algorithm to HS256 so a token cannot downgrade the
// check by naming a different method in its header.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	parser *jwt.Parser
}

func NewTokenManager(secret string, ttl time.Duration, issuer string) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// GenerateToken issues a token for the given user, valid for the configured
// TTL.
func (tm *TokenManager) GenerateToken(userID, email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tm.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and registered claims and returns
// the payload.
func (tm *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := tm.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
