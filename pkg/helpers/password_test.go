package helpers

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if salt == "" {
		t.Fatal("salt should not be empty")
	}

	hash, err := HashPassword(salt, "password123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !VerifyPassword(salt, "password123", hash) {
		t.Fatal("correct password should verify")
	}
	if VerifyPassword(salt, "wrong", hash) {
		t.Fatal("wrong password must not verify")
	}

	other, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if VerifyPassword(other, "password123", hash) {
		t.Fatal("a different salt must not verify")
	}
}

func TestGenerateSaltIsRandom(t *testing.T) {
	a, _ := GenerateSalt()
	b, _ := GenerateSalt()
	if a == b {
		t.Fatal("two salts should differ")
	}
}
