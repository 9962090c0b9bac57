package app

import (
	"path/filepath"
	"testing"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	if got := store.Get(); got != "" {
		t.Fatalf("Get before Set = %q, want empty", got)
	}
	if err := store.Set("abc123"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := store.Get(); got != "abc123" {
		t.Fatalf("Get = %q, want %q", got, "abc123")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if got := store.Get(); got != "" {
		t.Fatalf("Get after Clear = %q, want empty", got)
	}
}

func TestTokenStoreClearAbsent(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "never-written"))
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear on absent token: %v", err)
	}
}
