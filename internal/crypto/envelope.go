// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// EncodeEnvelope serializes an IV and ciphertext into the persisted wire
// format: lowercase hex of each part joined by a single colon. The result
// is an opaque blob to every layer above the cipher.
func EncodeEnvelope(iv, ciphertext []byte) string {
	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext)
}

// DecodeEnvelope parses the hex(iv):hex(ciphertext) wire format back into
// its two byte sequences.
//
// Returns [ErrMalformedEnvelope] if the input does not split into exactly
// two non-empty parts or either part is not valid hex.
func DecodeEnvelope(envelope string) (iv, ciphertext []byte, err error) {
	parts := strings.Split(envelope, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, nil, ErrMalformedEnvelope
	}

	iv, err = hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad iv encoding", ErrMalformedEnvelope)
	}

	ciphertext, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: bad ciphertext encoding", ErrMalformedEnvelope)
	}

	return iv, ciphertext, nil
}
