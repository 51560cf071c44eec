package models

import "time"

// SessionToken is proof of an authenticated user for a bounded time window.
// Token is the opaque lookup key; it is never derived from user data.
type SessionToken struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
