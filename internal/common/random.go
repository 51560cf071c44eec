package common

import (
	"crypto/rand"
	"encoding/base64"
)

// MakeRandToken generates an opaque random token from size bytes of
// cryptographically secure randomness, encoded as unpadded base64url.
// With size=32 the token carries 256 bits of entropy.
//
// It returns an error only if the system random source fails; callers must
// treat that as a generation failure rather than fall back to a weaker source.
func MakeRandToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
