package utils

import "testing"

func TestNewEmailChangeSecret_EntropyAndUniqueness(t *testing.T) {
	a, err := NewEmailChangeSecret()
	if err != nil {
		t.Fatalf("generate secret: %v", err)
	}
	b, err := NewEmailChangeSecret()
	if err != nil {
		t.Fatalf("generate secret: %v", err)
	}
	if len(a) != 64 { // 32 random bytes hex-encoded
		t.Fatalf("secret length = %d, want 64", len(a))
	}
	if a == b {
		t.Fatal("two generated secrets are identical")
	}
}

func TestHashTokenRaw_DeterministicAndOneWay(t *testing.T) {
	d1 := HashTokenRaw("some-raw-secret")
	d2 := HashTokenRaw("some-raw-secret")
	if d1 != d2 {
		t.Fatal("digest is not deterministic")
	}
	if d1 == "some-raw-secret" {
		t.Fatal("digest equals the input")
	}
	if len(d1) != 64 { // SHA-256 hex
		t.Fatalf("digest length = %d, want 64", len(d1))
	}
	if HashTokenRaw("another-secret") == d1 {
		t.Fatal("different inputs share a digest")
	}
}
