// Package store implements the generic collection store: one record
// collection per backing resource, with load-time self-healing, monotonic ID
// allocation, and full-collection rewrites on every mutation.
package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Resource.Read when the backing resource has
// never been written. Loading an absent resource yields an empty collection,
// not an error.
var ErrNotExist = errors.New("store: resource does not exist")

// Resource is the byte-level backing of one collection. A collection store is
// the sole owner of its resource; every write replaces the full payload.
type Resource interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

func isNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}
