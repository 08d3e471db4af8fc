// SPDX-License-Identifier: Apache-2.0

// Package crypto implements the envelope encryption used to store provider
// API keys at rest, the hex(iv):hex(ciphertext) wire codec, and display
// masking of decrypted secrets.
//
// Two cipher modes are supported:
//
//   - ModeGCM (default): AES-256-GCM with a 12-byte random nonce and an
//     HKDF-SHA256-derived key. Tampering with an envelope is detected
//     cryptographically via the authentication tag.
//   - ModeCBC (legacy): AES-256-CBC with a 16-byte random IV and the key
//     padded/truncated to 32 bytes. Wire-compatible with envelopes written
//     by the first-generation dashboard backend. Unauthenticated; kept only
//     for migrating live data.
//
// Decryption auto-detects the mode from the IV length, so a table can hold
// a mix of both formats while a deployment migrates.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
)

// Cipher modes accepted by [NewCipher].
const (
	ModeGCM = "aes-gcm"
	ModeCBC = "aes-cbc"
)

const (
	cbcIVSize = aes.BlockSize // 16
	gcmIVSize = 12
)

// Cipher encrypts and decrypts opaque secret strings into the envelope wire
// format. Implementations hold no per-call state and are safe for
// concurrent use.
type Cipher interface {
	// Encrypt encrypts plaintext under the configured key with a freshly
	// random IV and returns the serialized envelope. Two calls with the
	// same plaintext produce different envelopes.
	Encrypt(plaintext string) (string, error)

	// Decrypt parses an envelope and returns the original plaintext.
	// Returns ErrMalformedEnvelope for format errors and
	// ErrDecryptionFailure when the key is wrong or the ciphertext is
	// corrupted. There is no fallback to returning the input.
	Decrypt(envelope string) (string, error)
}

// envelopeCipher is the private implementation of [Cipher]. Both derived
// keys are computed once at construction; all methods are read-only
// afterwards.
type envelopeCipher struct {
	mode      string
	cbcKey    []byte
	gcmCipher cipher.AEAD
}

// NewCipher constructs a [Cipher] from the configured encryption secret and
// mode ([ModeGCM] or [ModeCBC]; empty mode defaults to GCM).
//
// Both keys are derived regardless of the write mode so that Decrypt can
// always handle either envelope format. Returns [ErrEmptyEncryptionKey] if
// secret is empty and [ErrUnsupportedMode] for an unknown mode.
func NewCipher(secret, mode string) (Cipher, error) {
	if secret == "" {
		return nil, ErrEmptyEncryptionKey
	}

	if mode == "" {
		mode = ModeGCM
	}
	if mode != ModeGCM && mode != ModeCBC {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}

	key, err := gcmKey(secret)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &envelopeCipher{
		mode:      mode,
		cbcKey:    legacyKey(secret),
		gcmCipher: gcm,
	}, nil
}

// Encrypt implements [Cipher].
func (e *envelopeCipher) Encrypt(plaintext string) (string, error) {
	if e.mode == ModeCBC {
		return e.encryptCBC(plaintext)
	}
	return e.encryptGCM(plaintext)
}

// Decrypt implements [Cipher]. The envelope format is detected from the IV
// length: 16 bytes is a legacy CBC envelope, 12 bytes a GCM one.
func (e *envelopeCipher) Decrypt(envelope string) (string, error) {
	iv, ciphertext, err := DecodeEnvelope(envelope)
	if err != nil {
		return "", err
	}

	switch len(iv) {
	case cbcIVSize:
		return e.decryptCBC(iv, ciphertext)
	case gcmIVSize:
		return e.decryptGCM(iv, ciphertext)
	default:
		return "", fmt.Errorf("%w: iv length %d", ErrMalformedEnvelope, len(iv))
	}
}

func (e *envelopeCipher) encryptGCM(plaintext string) (string, error) {
	nonce := make([]byte, gcmIVSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := e.gcmCipher.Seal(nil, nonce, []byte(plaintext), nil)
	return EncodeEnvelope(nonce, ciphertext), nil
}

func (e *envelopeCipher) decryptGCM(nonce, ciphertext []byte) (string, error) {
	plaintext, err := e.gcmCipher.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// Wrong key or tampered ciphertext; the tag mismatch detail stays
		// out of the returned error.
		return "", ErrDecryptionFailure
	}
	return string(plaintext), nil
}

func (e *envelopeCipher) encryptCBC(plaintext string) (string, error) {
	iv := make([]byte, cbcIVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", fmt.Errorf("generate iv: %w", err)
	}

	block, err := aes.NewCipher(e.cbcKey)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := padPKCS7([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return EncodeEnvelope(iv, ciphertext), nil
}

func (e *envelopeCipher) decryptCBC(iv, ciphertext []byte) (string, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", ErrDecryptionFailure
	}

	block, err := aes.NewCipher(e.cbcKey)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}

	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ciphertext)

	plaintext, err := unpadPKCS7(padded, aes.BlockSize)
	if err != nil {
		return "", ErrDecryptionFailure
	}

	return string(plaintext), nil
}

// padPKCS7 appends PKCS#7 padding up to the next multiple of blockSize.
// A plaintext already on a block boundary gains one full padding block.
func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// unpadPKCS7 strips and validates PKCS#7 padding. Every padding byte must
// equal the padding length.
func unpadPKCS7(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding length %d", n)
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}

	return data[:len(data)-n], nil
}
