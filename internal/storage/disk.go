package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FrameStore persists captured frames. Abstracted so tests can point it at a
// temporary directory.
type FrameStore interface {
	Save(filename string, data []byte) error
	Remove(filename string) error
	Dir() string
}

// DiskStore writes frames to a flat directory served as static content.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if needed and returns a store over it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes data under the store directory.
func (s *DiskStore) Save(filename string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, filename), data, 0o644)
}

// Remove deletes a previously saved frame.
func (s *DiskStore) Remove(filename string) error {
	return os.Remove(filepath.Join(s.dir, filename))
}

// Dir returns the directory frames are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}
