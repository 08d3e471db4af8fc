// SPDX-License-Identifier: Apache-2.0

package agents

import "errors"

var (
	// ErrRejected is returned when the vault refuses the server secret.
	ErrRejected = errors.New("key fetch rejected")

	// ErrKeyNotFound is returned when no credential exists for the
	// requested account/provider/project scope.
	ErrKeyNotFound = errors.New("key not found")

	// ErrServer is returned for any other non-2xx vault response.
	ErrServer = errors.New("key fetch failed")
)
