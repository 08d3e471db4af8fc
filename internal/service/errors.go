package service

import "errors"

var (
	// ErrUnauthenticated means the caller presented no usable identity: a
	// missing, malformed, expired or revoked session cookie.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnauthorized means the caller's identity was readable but does not
	// grant the operation, e.g. a wrong trusted-server secret.
	ErrUnauthorized = errors.New("unauthorized")

	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrValidationNoProvider  = errors.New("no provider was given")
	ErrValidationNoKey       = errors.New("no key material was given")
	ErrValidationNoAccountID = errors.New("no account ID was given")
	ErrValidationNoName      = errors.New("no name was given")
	ErrValidationNoFields    = errors.New("no fields to update were given")

	ErrUnknownAgentType = errors.New("unknown agent type")
	ErrAgentOutput      = errors.New("agent produced no JSON output")
)
