// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned when a session cookie cannot be
// verified: bad signature, expired, malformed, or missing claims.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims is the claim set of the HS256 session cookie issued by the
// hosted auth service. The subject carries the account identifier; SID
// names the server-side session row used for revocation checks.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SID is the session row identifier ("sid" claim).
	SID string `json:"sid"`
}

// ParseSessionToken verifies an HS256 session cookie against the shared
// auth signing secret and extracts the account identifier (the "sub" claim)
// and session identifier (the "sid" claim).
//
// Verification covers the signature, the expiration claim, and the signing
// method. Any failure, including missing claims, is normalised to
// [ErrInvalidSessionToken] so callers do not need to inspect low-level JWT
// errors; the underlying cause stays wrapped for server-side logs.
func ParseSessionToken(tokenString, signKey string) (accountID, sessionID string, err error) {
	claims := &SessionClaims{}

	_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return []byte(signKey), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	if claims.Subject == "" || claims.SID == "" {
		return "", "", fmt.Errorf("%w: missing sub or sid claim", ErrInvalidSessionToken)
	}

	return claims.Subject, claims.SID, nil
}

// NewSessionToken signs a session token for the given account and session
// identifiers. The hosted auth service issues cookies in production; this
// helper exists for tests and local tooling.
func NewSessionToken(accountID, sessionID, signKey string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = accountID
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: claims,
		SID:              sessionID,
	})

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}
