// Package password treats the one-way password digest as an injected
// capability, so the algorithm and work factor can change without touching
// calling code and tests can substitute a cheap stand-in.
package password

import "golang.org/x/crypto/bcrypt"

// Hasher computes and verifies irreversible password digests.
type Hasher interface {
	// Hash returns a salted one-way digest of password.
	Hash(password string) (string, error)

	// Compare reports whether password matches digest. Implementations must
	// take the same time for matching and non-matching passwords.
	Compare(digest, password string) bool
}

// BcryptHasher hashes with bcrypt. The cost must keep offline dictionary
// attacks prohibitive while staying well under a second per login.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a Hasher with the production work factor.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Compare(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
