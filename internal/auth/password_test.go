package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty hash")
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}

	if err := VerifyPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong password"); err == nil {
		t.Error("VerifyPassword accepted a wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	for _, password := range []string{"", "   ", "\t"} {
		if _, err := HashPassword(password); err == nil {
			t.Errorf("HashPassword(%q) expected error, got nil", password)
		}
	}
}

func TestVerifyPasswordEmptyHash(t *testing.T) {
	if err := VerifyPassword("", "anything"); err == nil {
		t.Error("VerifyPassword with empty hash expected error, got nil")
	}
}
