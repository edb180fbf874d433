// Package token signs and verifies the opaque values carried in cookies
// (session ids, remember-me tokens). Expiry is tracked out-of-band by the
// session store and the remember-me column, never inside the token.
package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const valueClaim = "v"

type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign wraps value in an HS256-signed token.
func (s *Signer) Sign(value string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		valueClaim: value,
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Unsign verifies the token and returns the embedded value. It fails closed:
// any tampering, wrong secret or malformed input yields ("", false).
func (s *Signer) Unsign(signed string) (string, bool) {
	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	value, ok := claims[valueClaim].(string)
	if !ok {
		return "", false
	}
	return value, true
}
