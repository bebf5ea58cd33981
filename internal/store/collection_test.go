package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"propertycore/pkg/domain"
)

type widget struct {
	ID        int       `json:"id"`
	ParentID  int       `json:"parent_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func widgetDescriptor() Descriptor[widget] {
	return Descriptor[widget]{
		Entity: domain.EntityType("widget"),
		ID:     func(w widget) int { return w.ID },
		SetID:  func(w *widget, id int) { w.ID = id },
		Stamp: func(w *widget, now time.Time, created bool) {
			if created {
				w.CreatedAt = now
			}
			w.UpdatedAt = now
		},
		Valid: func(w widget) bool { return w.ParentID > 0 },
		Less:  func(a, b widget) bool { return a.Name < b.Name },
	}
}

// fakeResource is an in-memory Resource that counts writes and can be forced
// to fail.
type fakeResource struct {
	data      []byte
	exists    bool
	writes    int
	failWrite bool
}

func (r *fakeResource) Read(context.Context) ([]byte, error) {
	if !r.exists {
		return nil, ErrNotExist
	}
	return append([]byte(nil), r.data...), nil
}

func (r *fakeResource) Write(_ context.Context, payload []byte) error {
	if r.failWrite {
		return errors.New("write refused")
	}
	r.writes++
	r.data = append([]byte(nil), payload...)
	r.exists = true
	return nil
}

func openWidgets(t *testing.T, res Resource) *Collection[widget] {
	t.Helper()
	c, err := Open(context.Background(), widgetDescriptor(), res, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return c
}

func TestOpenAbsentResourceStartsEmpty(t *testing.T) {
	res := &fakeResource{}
	c := openWidgets(t, res)
	if c.Count() != 0 {
		t.Fatalf("count = %d, want 0", c.Count())
	}
	if c.NextID() != 1 {
		t.Fatalf("next id = %d, want 1", c.NextID())
	}
	if res.writes != 0 {
		t.Fatalf("absent resource must not trigger a persist, got %d writes", res.writes)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	res := &fakeResource{}
	c := openWidgets(t, res)
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	c.SetNowFunc(func() time.Time { return now })

	created, err := c.Create(ctx, widget{ParentID: 7, Name: "beta"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps not stamped: %+v", created)
	}

	reopened := openWidgets(t, res)
	got, ok := reopened.GetByID(1)
	if !ok {
		t.Fatalf("record missing after reopen")
	}
	if got.Name != "beta" || got.ParentID != 7 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestGetAllCanonicalOrderAndPersistedOrder(t *testing.T) {
	ctx := context.Background()
	res := &fakeResource{}
	c := openWidgets(t, res)
	for _, name := range []string{"gamma", "alpha", "beta"} {
		if _, err := c.Create(ctx, widget{ParentID: 1, Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	all := c.GetAll()
	want := []string{"alpha", "beta", "gamma"}
	for i, w := range all {
		if w.Name != want[i] {
			t.Fatalf("memory order[%d] = %s, want %s", i, w.Name, want[i])
		}
	}

	var onDisk []widget
	if err := json.Unmarshal(res.data, &onDisk); err != nil {
		t.Fatalf("decode persisted payload: %v", err)
	}
	for i, w := range onDisk {
		if w.Name != want[i] {
			t.Fatalf("persisted order[%d] = %s, want %s", i, w.Name, want[i])
		}
	}
}

func TestIDsMonotonicAcrossDeletes(t *testing.T) {
	ctx := context.Background()
	res := &fakeResource{}
	c := openWidgets(t, res)
	for i := 0; i < 3; i++ {
		if _, err := c.Create(ctx, widget{ParentID: 1, Name: "w"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if ok, err := c.Delete(ctx, 3); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	created, err := c.Create(ctx, widget{ParentID: 1, Name: "w"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("id after delete = %d, want 4 (ids are never reused)", created.ID)
	}
}

func TestCorruptResourceResetsWithoutPersist(t *testing.T) {
	res := &fakeResource{data: []byte("{not json"), exists: true}
	c := openWidgets(t, res)
	if c.Count() != 0 {
		t.Fatalf("count = %d, want 0 after reset", c.Count())
	}
	if c.NextID() != 1 {
		t.Fatalf("next id = %d, want 1 after reset", c.NextID())
	}
	if res.writes != 0 {
		t.Fatalf("corrupt reset must not persist, got %d writes", res.writes)
	}
}

func TestOrphanPurgePersistsExactlyOnce(t *testing.T) {
	payload, err := json.Marshal([]widget{
		{ID: 1, ParentID: 5, Name: "kept"},
		{ID: 2, ParentID: 0, Name: "orphan"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	res := &fakeResource{data: payload, exists: true}
	c := openWidgets(t, res)
	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1 after orphan purge", c.Count())
	}
	if res.writes != 1 {
		t.Fatalf("orphan purge must persist exactly once, got %d writes", res.writes)
	}

	// The cleanup is durable, so a reopen finds nothing left to heal.
	res.writes = 0
	c2 := openWidgets(t, res)
	if c2.Count() != 1 {
		t.Fatalf("count after reopen = %d, want 1", c2.Count())
	}
	if res.writes != 0 {
		t.Fatalf("second open must not rewrite, got %d writes", res.writes)
	}
}

func TestFailedPersistLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	res := &fakeResource{}
	c := openWidgets(t, res)
	if _, err := c.Create(ctx, widget{ParentID: 1, Name: "first"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	res.failWrite = true
	if _, err := c.Create(ctx, widget{ParentID: 1, Name: "second"}); err == nil {
		t.Fatalf("expected create to fail")
	}
	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1 after failed create", c.Count())
	}
	if c.NextID() != 2 {
		t.Fatalf("next id = %d, want 2 (failed create must not consume ids)", c.NextID())
	}

	if _, _, err := c.Update(ctx, 1, func(w *widget) error { w.Name = "renamed"; return nil }); err == nil {
		t.Fatalf("expected update to fail")
	}
	got, _ := c.GetByID(1)
	if got.Name != "first" {
		t.Fatalf("name = %q, want %q after failed update", got.Name, "first")
	}

	if _, err := c.Delete(ctx, 1); err == nil {
		t.Fatalf("expected delete to fail")
	}
	if c.Count() != 1 {
		t.Fatalf("count = %d, want 1 after failed delete", c.Count())
	}
}

func TestUpdateUnknownIDReportsNotFound(t *testing.T) {
	ctx := context.Background()
	c := openWidgets(t, &fakeResource{})
	_, found, err := c.Update(ctx, 99, func(w *widget) error { return nil })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatalf("unknown id reported as found")
	}
}

func TestMutatorErrorAbortsUpdate(t *testing.T) {
	ctx := context.Background()
	res := &fakeResource{}
	c := openWidgets(t, res)
	if _, err := c.Create(ctx, widget{ParentID: 1, Name: "keep"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	writesBefore := res.writes
	boom := errors.New("boom")
	_, found, err := c.Update(ctx, 1, func(w *widget) error { return boom })
	if !found || !errors.Is(err, boom) {
		t.Fatalf("found=%v err=%v, want found with mutator error", found, err)
	}
	if res.writes != writesBefore {
		t.Fatalf("aborted update must not persist")
	}
	got, _ := c.GetByID(1)
	if got.Name != "keep" {
		t.Fatalf("record mutated despite error: %+v", got)
	}
}

func TestNextIDDerivedFromMaxOnLoad(t *testing.T) {
	payload, err := json.Marshal([]widget{
		{ID: 3, ParentID: 1, Name: "a"},
		{ID: 12, ParentID: 1, Name: "b"},
		{ID: 7, ParentID: 1, Name: "c"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	c := openWidgets(t, &fakeResource{data: payload, exists: true})
	if c.NextID() != 13 {
		t.Fatalf("next id = %d, want 13", c.NextID())
	}
}
