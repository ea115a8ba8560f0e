package utils

import "testing"

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !ComparePassword(hash, "s3cret-pass") {
		t.Fatal("expected matching password to compare true")
	}
	if ComparePassword(hash, "wrong-pass") {
		t.Fatal("expected non-matching password to compare false")
	}
}
