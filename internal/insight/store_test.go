package insight

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Load(ctx, "insights/absent.json"); err == nil {
		t.Error("expected error loading an absent key")
	}

	payload := []byte(`{"ok":true}`)
	if err := store.Save(ctx, "insights/a.json", payload); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Mutating the caller's buffer must not change the stored copy.
	payload[2] = 'X'

	got, err := store.Load(ctx, "insights/a.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"ok":true}`)) {
		t.Errorf("Load = %q, stored copy was mutated", got)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(t.TempDir())

	if err := store.Save(ctx, "insights/tech.json", []byte("bundle")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load(ctx, "insights/tech.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "bundle" {
		t.Errorf("Load = %q, want %q", got, "bundle")
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store := NewFileStore(t.TempDir())

	tests := []struct {
		name string
		key  string
	}{
		{name: "parent reference", key: "../outside.json"},
		{name: "nested parent reference", key: "insights/../../outside.json"},
		{name: "absolute path", key: string(filepath.Separator) + "etc" + string(filepath.Separator) + "passwd"},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Save(ctx, tt.key, []byte("x")); err == nil {
				t.Errorf("Save(%q) accepted a traversal key", tt.key)
			}
			if _, err := store.Load(ctx, tt.key); err == nil {
				t.Errorf("Load(%q) accepted a traversal key", tt.key)
			}
		})
	}
}
