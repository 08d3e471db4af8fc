package models

import "time"

// Session is one interactive login issued by the hosted auth service.
// The server never creates sessions itself; it only resolves the session
// cookie to an account and checks that the row has not been revoked.
type Session struct {
	// ID is the session identifier carried in the cookie's "sid" claim.
	ID string `json:"-"`

	// AccountID is the account the session authenticates.
	AccountID string `json:"-"`

	// ExpiresAt is when the session stops being valid regardless of the
	// cookie's own expiry.
	ExpiresAt time.Time `json:"-"`

	// CreatedAt is when the session was issued.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at the given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
