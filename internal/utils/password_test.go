package utils

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("donor-password-1", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "donor-password-1" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hash, "donor-password-1") {
		t.Fatal("correct password rejected")
	}
	if VerifyPassword(hash, "donor-password-2") {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	// A misconfigured cost must not break account creation.
	for _, cost := range []int{-1, 0, 99} {
		hash, err := HashPassword("pw", cost)
		if err != nil {
			t.Fatalf("cost %d: %v", cost, err)
		}
		if !VerifyPassword(hash, "pw") {
			t.Fatalf("cost %d: hash does not verify", cost)
		}
	}
}
