package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}
	if store.LocalBaseDir() != dir {
		t.Errorf("LocalBaseDir = %q, want %q", store.LocalBaseDir(), dir)
	}

	ctx := context.Background()
	payload := []byte("fake image bytes")

	key, err := store.Save(ctx, payload, SaveOptions{Category: "media", BaseName: "cover", Extension: "png"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if key == "" {
		t.Fatal("Save returned empty key")
	}

	absPath := filepath.Join(dir, filepath.FromSlash(key))
	written, err := os.ReadFile(absPath)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Error("stored bytes differ from payload")
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := os.Stat(absPath); !os.IsNotExist(err) {
		t.Errorf("file still present after Delete: %v", err)
	}

	// Deleting a missing key is not an error.
	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}

func TestLocalStorageSaveEmptyPayload(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}
	if _, err := store.Save(context.Background(), nil, SaveOptions{Category: "media"}); err == nil {
		t.Error("Save with empty payload expected error, got nil")
	}
}

func TestLocalStorageDeleteRejectsTraversal(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}
	for _, key := range []string{"../outside.txt", "../../etc/passwd", "/etc/passwd"} {
		if err := store.Delete(context.Background(), key); err == nil {
			t.Errorf("Delete(%q) expected error, got nil", key)
		}
	}
}

func TestLocalStorageSaveCancelledContext(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Save(ctx, []byte("data"), SaveOptions{Category: "media"}); err == nil {
		t.Error("Save with cancelled context expected error, got nil")
	}
}
