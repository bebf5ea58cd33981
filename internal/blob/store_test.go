package blob

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	return map[string]Store{
		"fs":     fs,
		"memory": NewMemory(),
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			body := "contrato de arrendamiento"
			info, err := store.Put(ctx, "tenants/1/contrato.pdf", strings.NewReader(body), PutOptions{
				ContentType: "application/pdf",
				Metadata:    map[string]string{"origen": "intake"},
			})
			if err != nil {
				t.Fatalf("put: %v", err)
			}
			if info.Size != int64(len(body)) {
				t.Fatalf("size = %d, want %d", info.Size, len(body))
			}

			got, rc, err := store.Get(ctx, "tenants/1/contrato.pdf")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(data) != body {
				t.Fatalf("body mismatch: %q", data)
			}
			if got.ContentType != "application/pdf" || got.Metadata["origen"] != "intake" {
				t.Fatalf("info mismatch: %+v", got)
			}
		})
	}
}

func TestPutRefusesOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Put(ctx, "k", strings.NewReader("a"), PutOptions{}); err != nil {
				t.Fatalf("first put: %v", err)
			}
			if _, err := store.Put(ctx, "k", strings.NewReader("b"), PutOptions{}); err == nil {
				t.Fatalf("second put must fail, attachments are immutable")
			}
		})
	}
}

func TestGetMissingKey(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get missing: err = %v, want ErrNotFound", err)
			}
			if _, err := store.Head(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("head missing: err = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestDeleteReportsPresence(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Put(ctx, "k", strings.NewReader("a"), PutOptions{}); err != nil {
				t.Fatalf("put: %v", err)
			}
			ok, err := store.Delete(ctx, "k")
			if err != nil || !ok {
				t.Fatalf("delete existing: ok=%v err=%v", ok, err)
			}
			ok, err = store.Delete(ctx, "k")
			if err != nil || ok {
				t.Fatalf("delete missing: ok=%v err=%v, want false without error", ok, err)
			}
		})
	}
}

func TestListByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, store := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"tenants/1/a.pdf", "tenants/1/b.pdf", "tenants/2/c.pdf"} {
				if _, err := store.Put(ctx, key, strings.NewReader("x"), PutOptions{}); err != nil {
					t.Fatalf("put %s: %v", key, err)
				}
			}
			infos, err := store.List(ctx, "tenants/1/")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(infos) != 2 {
				t.Fatalf("list = %d entries, want 2", len(infos))
			}
			if infos[0].Key != "tenants/1/a.pdf" || infos[1].Key != "tenants/1/b.pdf" {
				t.Fatalf("list order: %+v", infos)
			}
		})
	}
}

func TestFilesystemFailedPutLeavesNothingBehind(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs, err := NewFilesystem(root)
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	// A directory squatting on the sidecar path makes the meta write fail
	// after the data file is already in place.
	if err := os.Mkdir(filepath.Join(root, "contrato.pdf.meta"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := fs.Put(ctx, "contrato.pdf", strings.NewReader("x"), PutOptions{}); err == nil {
		t.Fatalf("put must fail when the sidecar cannot be written")
	}
	if _, err := os.Stat(filepath.Join(root, "contrato.pdf")); !errors.Is(err, iofs.ErrNotExist) {
		t.Fatalf("data file left behind after failed put: %v", err)
	}
	if _, _, err := fs.Get(ctx, "contrato.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after failed put: err = %v, want ErrNotFound", err)
	}

	if err := os.Remove(filepath.Join(root, "contrato.pdf.meta")); err != nil {
		t.Fatalf("remove squatter: %v", err)
	}
	if _, err := fs.Put(ctx, "contrato.pdf", strings.NewReader("x"), PutOptions{}); err != nil {
		t.Fatalf("retry after cleanup: %v", err)
	}
}

func TestFilesystemRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("filesystem store: %v", err)
	}
	for _, key := range []string{"../escape", "/abs", "a/../../b", ""} {
		if _, err := fs.Put(ctx, key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}
