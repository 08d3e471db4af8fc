// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// keySize is the AES-256 key length in bytes.
const keySize = 32

// gcmKeyInfo domain-separates the HKDF expansion of the configured secret
// from any other use of the same value.
const gcmKeyInfo = "keyvault envelope key v2"

// legacyKey expands or truncates the configured secret to exactly 32 bytes:
// right-padded with zero bytes when shorter, cut when longer. This matches
// the wire format of envelopes written by the first-generation dashboard
// backend and exists only so those envelopes keep decrypting. New
// deployments should use the GCM mode, which derives its key with HKDF.
func legacyKey(secret string) []byte {
	key := make([]byte, keySize)
	copy(key, secret)
	return key
}

// gcmKey derives a 256-bit key from the configured secret with HKDF-SHA256.
// Unlike legacyKey this spreads the secret's entropy over the whole key
// even when the secret is short.
func gcmKey(secret string) ([]byte, error) {
	key := make([]byte, keySize)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(gcmKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive gcm key: %w", err)
	}
	return key, nil
}
