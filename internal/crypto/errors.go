// SPDX-License-Identifier: Apache-2.0

package crypto

import "errors"

// Sentinel errors returned by the cipher and envelope codec. Callers match
// against them with [errors.Is]. Neither error ever carries plaintext or
// key material in its message.
var (
	// ErrMalformedEnvelope is returned when a stored value is not a valid
	// hex(iv):hex(ciphertext) envelope: wrong number of colon-separated
	// parts, an empty part, invalid hex, or an IV of unknown length.
	ErrMalformedEnvelope = errors.New("malformed credential envelope")

	// ErrDecryptionFailure is returned when an envelope parses but cannot
	// be decrypted: wrong key, corrupted ciphertext, bad block alignment or
	// padding (CBC), or authentication-tag mismatch (GCM). It indicates
	// configuration error or data corruption and must surface loudly.
	ErrDecryptionFailure = errors.New("credential decryption failed")

	// ErrUnsupportedMode is returned by NewCipher for an unknown
	// encryption mode string.
	ErrUnsupportedMode = errors.New("unsupported encryption mode")

	// ErrEmptyEncryptionKey is returned by NewCipher when the configured
	// encryption secret is empty.
	ErrEmptyEncryptionKey = errors.New("empty encryption key")
)
