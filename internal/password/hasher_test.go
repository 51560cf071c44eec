package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost} // keep the suite fast

	digest, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "password123" || strings.Contains(digest, "password123") {
		t.Fatalf("digest must not contain the plaintext")
	}
	if !h.Compare(digest, "password123") {
		t.Fatalf("Compare must accept the original password")
	}
	if h.Compare(digest, "password124") {
		t.Fatalf("Compare must reject a different password")
	}
}

func TestBcryptHasher_DigestsAreSalted(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	a, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("two digests of the same password are equal, salt is missing")
	}
}

func TestNewBcryptHasher_UsesDefaultCost(t *testing.T) {
	h := NewBcryptHasher()
	if h.Cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", h.Cost)
	}
}
