package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"propertycore/pkg/domain"
)

// Descriptor wires entity-specific behavior into a Collection.
type Descriptor[T any] struct {
	// Entity names the collection in logs and errors.
	Entity domain.EntityType
	// ID and SetID expose the record's positive integer identifier.
	ID    func(T) int
	SetID func(*T, int)
	// Stamp sets timestamps on mutation; created is true on first insert.
	// Nil for entities without timestamp fields.
	Stamp func(*T, time.Time, bool)
	// Valid reports whether a loaded record is well-formed. Records failing
	// the check are purged during load (orphan cleanup). Nil accepts all.
	Valid func(T) bool
	// Less is the canonical listing order applied by GetAll and Persist.
	Less func(T, T) bool
	// Clone deep-copies a record. Nil means the record has no reference
	// fields and value copy suffices.
	Clone func(T) T
}

func (d Descriptor[T]) clone(rec T) T {
	if d.Clone == nil {
		return rec
	}
	return d.Clone(rec)
}

// Collection owns the full lifecycle of one record collection backed by a
// single resource. After any successful mutation the in-memory snapshot and
// the persisted resource are identical. Mutations rewrite the whole
// collection; there is no append log.
type Collection[T any] struct {
	mu      sync.Mutex
	desc    Descriptor[T]
	res     Resource
	log     *zap.Logger
	nowFn   func() time.Time
	records []T
	nextID  int
}

// Open constructs the collection and loads it from its resource. An absent
// resource yields an empty collection; a malformed one is reset to empty
// with a warning. Records failing the validity check are purged and the
// cleaned collection is written back immediately so the self-heal is
// durable.
func Open[T any](ctx context.Context, desc Descriptor[T], res Resource, log *zap.Logger) (*Collection[T], error) {
	if desc.ID == nil || desc.SetID == nil {
		return nil, fmt.Errorf("store: descriptor for %s lacks ID accessors", desc.Entity)
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Collection[T]{
		desc:  desc,
		res:   res,
		log:   log,
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.loadLocked(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// SetNowFunc overrides the clock, for tests.
func (c *Collection[T]) SetNowFunc(fn func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nowFn = fn
}

func (c *Collection[T]) loadLocked(ctx context.Context) error {
	payload, err := c.res.Read(ctx)
	switch {
	case err == nil:
	case isNotExist(err):
		c.records = nil
		c.nextID = 1
		return nil
	default:
		// An unreadable resource is treated like a corrupt one: recover by
		// resetting to empty rather than failing the caller.
		c.log.Warn("collection resource unreadable, resetting to empty",
			zap.String("entity", string(c.desc.Entity)), zap.Error(err))
		c.records = nil
		c.nextID = 1
		return nil
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		c.log.Warn("collection resource corrupt, resetting to empty",
			zap.String("entity", string(c.desc.Entity)), zap.Error(err))
		records = nil
	}

	kept := records[:0]
	purged := 0
	for _, rec := range records {
		if c.desc.Valid != nil && !c.desc.Valid(rec) {
			purged++
			continue
		}
		kept = append(kept, rec)
	}
	c.records = kept
	c.nextID = c.maxIDLocked() + 1

	if purged > 0 {
		c.log.Warn("purged orphan records during load",
			zap.String("entity", string(c.desc.Entity)), zap.Int("purged", purged))
		if err := c.persistLocked(ctx, c.records); err != nil {
			return fmt.Errorf("persist cleaned %s collection: %w", c.desc.Entity, err)
		}
	}
	return nil
}

func (c *Collection[T]) maxIDLocked() int {
	max := 0
	for _, rec := range c.records {
		if id := c.desc.ID(rec); id > max {
			max = id
		}
	}
	return max
}

// Reload discards the in-memory snapshot and loads the resource fresh.
func (c *Collection[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(ctx)
}

// GetAll returns cloned records in the entity's canonical order.
func (c *Collection[T]) GetAll() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, c.desc.clone(rec))
	}
	c.sortCanonical(out)
	return out
}

// GetByID returns the record with the given id, or (zero, false).
func (c *Collection[T]) GetByID(id int) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range c.records {
		if c.desc.ID(rec) == id {
			return c.desc.clone(rec), true
		}
	}
	var zero T
	return zero, false
}

// Count returns the number of records.
func (c *Collection[T]) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// NextID returns the id the next create will be assigned.
func (c *Collection[T]) NextID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.nextID
}

// Create assigns the next id, stamps timestamps, appends the record and
// persists the full collection. The in-memory snapshot is only updated when
// the persist succeeds, so a failed create leaves the previous state
// untouched. IDs are monotonically allocated and never reused.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec = c.desc.clone(rec)
	c.desc.SetID(&rec, c.nextID)
	if c.desc.Stamp != nil {
		c.desc.Stamp(&rec, c.nowFn(), true)
	}
	candidate := append(c.snapshotLocked(), rec)
	if err := c.persistLocked(ctx, candidate); err != nil {
		var zero T
		return zero, err
	}
	c.records = candidate
	c.nextID++
	return c.desc.clone(rec), nil
}

// Update applies the mutator to the matching record, stamps updated_at and
// persists. Returns (zero, false, nil) when the id is unknown; the bool is
// the caller's not-found check.
func (c *Collection[T]) Update(ctx context.Context, id int, mutate func(*T) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	idx := -1
	for i, rec := range c.records {
		if c.desc.ID(rec) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, false, nil
	}
	updated := c.desc.clone(c.records[idx])
	if err := mutate(&updated); err != nil {
		return zero, true, err
	}
	c.desc.SetID(&updated, id)
	if c.desc.Stamp != nil {
		c.desc.Stamp(&updated, c.nowFn(), false)
	}
	candidate := c.snapshotLocked()
	candidate[idx] = updated
	if err := c.persistLocked(ctx, candidate); err != nil {
		return zero, true, err
	}
	c.records = candidate
	return c.desc.clone(updated), true, nil
}

// Delete removes the matching record if present and persists only when
// something was removed.
func (c *Collection[T]) Delete(ctx context.Context, id int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := -1
	for i, rec := range c.records {
		if c.desc.ID(rec) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	candidate := c.snapshotLocked()
	candidate = append(candidate[:idx], candidate[idx+1:]...)
	if err := c.persistLocked(ctx, candidate); err != nil {
		return false, err
	}
	c.records = candidate
	return true, nil
}

// Persist rewrites the resource from the in-memory snapshot.
func (c *Collection[T]) Persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx, c.records)
}

func (c *Collection[T]) snapshotLocked() []T {
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

func (c *Collection[T]) sortCanonical(records []T) {
	if c.desc.Less == nil {
		sort.SliceStable(records, func(i, j int) bool {
			return c.desc.ID(records[i]) < c.desc.ID(records[j])
		})
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return c.desc.Less(records[i], records[j])
	})
}

// persistLocked serializes the whole candidate collection in canonical order
// and overwrites the resource.
func (c *Collection[T]) persistLocked(ctx context.Context, records []T) error {
	ordered := make([]T, len(records))
	copy(ordered, records)
	c.sortCanonical(ordered)
	payload, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", c.desc.Entity, err)
	}
	if err := c.res.Write(ctx, payload); err != nil {
		return fmt.Errorf("write %s collection: %w", c.desc.Entity, err)
	}
	return nil
}
