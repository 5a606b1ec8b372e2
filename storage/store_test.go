package storage

import (
	"path/filepath"
	"testing"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "client.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"mem":    NewMemStore(),
		"sqlite": sqlite,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if blob, err := store.Get("session"); err != nil || blob != nil {
				t.Fatalf("expected nil for missing key, got %q err %v", blob, err)
			}

			if err := store.Put("session", []byte(`{"a":1}`)); err != nil {
				t.Fatalf("put failed: %v", err)
			}
			blob, err := store.Get("session")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if string(blob) != `{"a":1}` {
				t.Fatalf("expected stored blob back, got %q", blob)
			}

			// Last write wins.
			if err := store.Put("session", []byte(`{"a":2}`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			blob, _ = store.Get("session")
			if string(blob) != `{"a":2}` {
				t.Fatalf("expected overwrite, got %q", blob)
			}

			if err := store.Delete("session"); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if blob, _ := store.Get("session"); blob != nil {
				t.Fatalf("expected nil after delete, got %q", blob)
			}

			// Deleting a missing key is a no-op.
			if err := store.Delete("session"); err != nil {
				t.Fatalf("second delete failed: %v", err)
			}
		})
	}
}
