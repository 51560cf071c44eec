package common

import (
	"encoding/base64"
	"testing"
)

func TestMakeRandToken_LengthAndEncoding(t *testing.T) {
	const n = 32
	s, err := MakeRandToken(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("token is not valid base64url: %v", err)
	}
	if len(raw) != n {
		t.Fatalf("expected %d raw bytes, got %d", n, len(raw))
	}
}

func TestMakeRandToken_ZeroSize(t *testing.T) {
	s, err := MakeRandToken(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestMakeRandToken_EntropyHint(t *testing.T) {
	const n = 32
	a, err := MakeRandToken(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := MakeRandToken(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatalf("two consecutive tokens are equal, randomness source is suspect")
	}
}
