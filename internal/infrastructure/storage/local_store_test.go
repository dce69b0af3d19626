package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalImageStoreSaveRemove(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080/images/")
	if err != nil {
		t.Fatalf("NewLocalImageStore() error = %v", err)
	}
	ctx := context.Background()

	ref, err := store.Save(ctx, []byte("payload"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ref == "" {
		t.Fatalf("Save() expected non-empty ref")
	}

	data, err := os.ReadFile(filepath.Join(store.dir, ref))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("stored payload = %q", data)
	}

	url := store.PublicURL(ref)
	if url != "http://localhost:8080/images/"+ref {
		t.Fatalf("PublicURL() = %q", url)
	}

	if err := store.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, ref)); !os.IsNotExist(err) {
		t.Fatalf("expected file removed, stat err = %v", err)
	}

	// Removing twice is fine.
	if err := store.Remove(ctx, ref); err != nil {
		t.Fatalf("Remove(absent) error = %v", err)
	}
}

func TestLocalImageStoreRejectsEmptyPayload(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir(), "http://localhost:8080/images")
	if err != nil {
		t.Fatalf("NewLocalImageStore() error = %v", err)
	}

	if _, err := store.Save(context.Background(), nil); err == nil {
		t.Fatalf("Save(empty) expected error")
	}
}
