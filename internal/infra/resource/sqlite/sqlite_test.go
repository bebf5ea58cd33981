package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"propertycore/internal/store"
)

func TestBucketRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "propertycore.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	res := db.Resource("tenants")
	if _, err := res.Read(ctx); !errors.Is(err, store.ErrNotExist) {
		t.Fatalf("read empty bucket: err = %v, want store.ErrNotExist", err)
	}

	if err := res.Write(ctx, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := res.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("payload mismatch: %s", got)
	}

	// Buckets are independent rows.
	other := db.Resource("payments")
	if _, err := other.Read(ctx); !errors.Is(err, store.ErrNotExist) {
		t.Fatalf("sibling bucket must stay empty, err = %v", err)
	}

	if err := res.Write(ctx, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = res.Read(ctx)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("overwrite not applied: %s", got)
	}
}
