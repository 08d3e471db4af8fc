// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting
// caller identity from the request. Callers can match against them with
// [errors.Is].
var (
	// ErrNoSessionCookie is returned when the incoming request carries no
	// session cookie at all.
	ErrNoSessionCookie = errors.New("missing session cookie")

	// ErrEmptyServerSecretHeader is returned when the trusted-server surface
	// is hit without the shared-secret header.
	ErrEmptyServerSecretHeader = errors.New("empty `X-Server-Secret` header")

	// ErrEmptyCronKeyHeader is returned when a cron endpoint is hit without
	// the scheduler API key header.
	ErrEmptyCronKeyHeader = errors.New("empty `X-Cron-Api-Key` header")
)
