package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"propertycore/internal/store"
)

func TestReadMissingFileIsNotExist(t *testing.T) {
	res, err := New(filepath.Join(t.TempDir(), "widgets.json"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := res.Read(context.Background()); !errors.Is(err, store.ErrNotExist) {
		t.Fatalf("read missing file: err = %v, want store.ErrNotExist", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "widgets.json")
	res, err := New(path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	payload := []byte(`[{"id":1}]`)
	if err := res.Write(ctx, payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := res.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("round trip mismatch: %s", got)
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	res, err := New(filepath.Join(dir, "widgets.json"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := res.Write(ctx, []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := res.Write(ctx, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "widgets.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
