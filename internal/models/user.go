// Package models holds the persisted entities of the identity subsystem.
package models

import "time"

// User is the durable identity record. PasswordDigest is a one-way salted
// hash; the plaintext password never appears in this struct or in storage.
type User struct {
	ID             string
	Email          string
	PasswordDigest string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastLoginAt    *time.Time
}
