// Package file provides the default collection resource: one JSON document
// per collection on the local filesystem, replaced atomically on write.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"propertycore/internal/store"
)

// Resource reads and writes a single file. Writes go through a temp file in
// the same directory followed by a rename, so readers never observe a
// partially written document.
type Resource struct {
	path string
}

// New returns a file resource at path, creating parent directories as needed.
func New(path string) (*Resource, error) {
	if path == "" {
		return nil, errors.New("file resource: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	return &Resource{path: path}, nil
}

// Path returns the configured file path.
func (r *Resource) Path() string { return r.path }

func (r *Resource) Read(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (r *Resource) Write(_ context.Context, payload []byte) error {
	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}
