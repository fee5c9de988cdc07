package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("HashPassword() returned plaintext")
	}

	if !CheckPassword(hash, "hunter22") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("not-a-hash", "hunter22") {
		t.Error("CheckPassword() = true for malformed hash")
	}
}
