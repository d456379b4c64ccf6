// Package jwtmw issues and validates the bearer tokens that authenticate API requests.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the lifetime of an issued token. There is no refresh:
// an expired token forces the user to log in again.
const DefaultExpiration = 24 * time.Hour

// ErrInvalidToken is returned for any token that is malformed, badly signed or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried by every token.
type Claims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// validator verifies HS256 tokens signed with a shared secret.
type validator struct {
	secret []byte
	parser *jwt.Parser
}

// NewValidator creates a validator for tokens signed with secret.
func NewValidator(secret string) *validator {
	return &validator{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// Validate parses tokenStr and returns its claims.
// Every failure wraps ErrInvalidToken so callers cannot tell "expired" from "forged".
func (v *validator) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	// sub must agree with the typed user id when present
	if claims.Subject != "" && claims.Subject != strconv.FormatUint(uint64(claims.UserID), 10) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
