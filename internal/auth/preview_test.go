package auth

import (
	"testing"
	"time"
)

func TestPreviewManagerRoundTrip(t *testing.T) {
	manager, err := NewPreviewManager("test-secret", "inkwell", time.Hour)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}

	token, expiresAt, err := manager.IssueToken(42)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("IssueToken returned empty token")
	}
	if remaining := time.Until(expiresAt); remaining < 50*time.Minute || remaining > 70*time.Minute {
		t.Errorf("unexpected expiry %v", expiresAt)
	}

	postID, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if postID != 42 {
		t.Errorf("ParseToken postID = %d, want 42", postID)
	}
}

func TestPreviewManagerRejectsWrongSecret(t *testing.T) {
	issuer, err := NewPreviewManager("secret-a", "inkwell", time.Hour)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}
	verifier, err := NewPreviewManager("secret-b", "inkwell", time.Hour)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}

	token, _, err := issuer.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("ParseToken accepted a token signed with a different secret")
	}
}

func TestPreviewManagerRejectsExpired(t *testing.T) {
	manager, err := NewPreviewManager("test-secret", "inkwell", time.Millisecond)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}
	token, _, err := manager.IssueToken(7)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := manager.ParseToken(token); err == nil {
		t.Error("ParseToken accepted an expired token")
	}
}

func TestPreviewManagerRejectsGarbage(t *testing.T) {
	manager, err := NewPreviewManager("test-secret", "inkwell", time.Hour)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}
	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		if _, err := manager.ParseToken(token); err == nil {
			t.Errorf("ParseToken(%q) expected error, got nil", token)
		}
	}
}

func TestNewPreviewManagerValidation(t *testing.T) {
	if _, err := NewPreviewManager("", "inkwell", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewPreviewManager("   ", "inkwell", time.Hour); err == nil {
		t.Error("expected error for blank secret")
	}
	manager, err := NewPreviewManager("secret", "", 0)
	if err != nil {
		t.Fatalf("NewPreviewManager returned error: %v", err)
	}
	if _, _, err := manager.IssueToken(0); err == nil {
		t.Error("IssueToken(0) expected error, got nil")
	}
}
