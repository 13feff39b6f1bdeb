package localstore

import (
	"bytes"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	if _, ok, err := store.Get("entry-drafts"); err != nil || ok {
		t.Fatalf("expected miss on empty store, ok=%v err=%v", ok, err)
	}

	payload := []byte(`{"drafts":[]}`)
	if err := store.Put("entry-drafts", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, ok, err := store.Get("entry-drafts")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(value, payload) {
		t.Fatalf("value mismatch: %s", value)
	}

	if err := store.Delete("entry-drafts"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get("entry-drafts"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Delete("never-written"); err != nil {
		t.Fatalf("expected nil error for missing key, got %v", err)
	}
}
