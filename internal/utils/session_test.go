// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSignKey = "session-signing-secret"

func signedSession(t *testing.T, accountID, sessionID, key string, expiry time.Time) string {
	t.Helper()
	token, err := NewSessionToken(accountID, sessionID, key, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiry),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	require.NoError(t, err)
	return token
}

func TestParseSessionToken_Success(t *testing.T) {
	token := signedSession(t, "acct_1", "sess_42", testSignKey, time.Now().Add(time.Hour))

	accountID, sessionID, err := ParseSessionToken(token, testSignKey)
	require.NoError(t, err)
	assert.Equal(t, "acct_1", accountID)
	assert.Equal(t, "sess_42", sessionID)
}

func TestParseSessionToken_WrongKey(t *testing.T) {
	token := signedSession(t, "acct_1", "sess_42", testSignKey, time.Now().Add(time.Hour))

	_, _, err := ParseSessionToken(token, "another-key")
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestParseSessionToken_Expired(t *testing.T) {
	token := signedSession(t, "acct_1", "sess_42", testSignKey, time.Now().Add(-time.Minute))

	_, _, err := ParseSessionToken(token, testSignKey)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, _, err := ParseSessionToken("not-a-jwt", testSignKey)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestParseSessionToken_MissingClaims(t *testing.T) {
	// Signed correctly but without sub/sid.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSignKey))
	require.NoError(t, err)

	_, _, err = ParseSessionToken(signed, testSignKey)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}
