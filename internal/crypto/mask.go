// SPDX-License-Identifier: Apache-2.0

package crypto

import "strings"

// maxMaskRun caps the number of mask characters in the middle of a masked
// secret so long keys don't blow up the dashboard layout.
const maxMaskRun = 10

// MaskSecret renders a decrypted secret for display: the first four and
// last four characters with a run of '*' in between, capped at ten mask
// characters. Secrets of eight characters or fewer are fully masked with a
// '*' per character, leaking only the length.
//
// The masked view is derived fresh on each authorized read and is never
// persisted.
func MaskSecret(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}

	run := len(secret) - 8
	if run > maxMaskRun {
		run = maxMaskRun
	}

	return secret[:4] + strings.Repeat("*", run) + secret[len(secret)-4:]
}
