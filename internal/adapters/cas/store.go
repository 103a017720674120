// Package cas implements the on-disk node fingerprint store.
package cas

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.FingerprintStore = (*Store)(nil)
	_ ports.StoreOpener      = (*Opener)(nil)
)

// Store implements ports.FingerprintStore with one file per node id.
// Entries are never evicted.
type Store struct {
	dir      string
	readOnly bool
}

// NewStore creates a store backed by the given directory, creating it if needed.
func NewStore(dir string) (*Store, error) {
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrOutputDirCreateFailed, err), "path", dir)
	}
	return &Store{dir: dir}, nil
}

// NewReadOnlyStore creates a store backed by dir that rejects writes. The
// directory is not created.
func NewReadOnlyStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir), readOnly: true}
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(nodeID string) string {
	return filepath.Join(s.dir, nodeID+".svg")
}

// Get retrieves the cached serialization of a node.
func (s *Store) Get(nodeID string) (*domain.CacheEntry, error) {
	path := s.path(nodeID)

	//nolint:gosec // Path is derived from a validated node id
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.With(fmt.Errorf("%w: %w", domain.ErrCacheReadFailed, err), "node_id", nodeID), "path", path)
	}

	return &domain.CacheEntry{NodeID: nodeID, Content: data}, nil
}

// Put overwrites the cached serialization of a node.
func (s *Store) Put(entry domain.CacheEntry) error {
	path := s.path(entry.NodeID)
	if s.readOnly {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, "store is read-only"), "node_id", entry.NodeID), "path", path)
	}

	//nolint:gosec // Path is derived from a validated node id
	if err := os.WriteFile(path, entry.Content, domain.FilePerm); err != nil {
		return zerr.With(zerr.With(fmt.Errorf("%w: %w", domain.ErrCacheWriteFailed, err), "node_id", entry.NodeID), "path", path)
	}
	return nil
}

// Opener implements ports.StoreOpener.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open returns a Store rooted at cacheDir.
func (o *Opener) Open(cacheDir string) (ports.FingerprintStore, error) {
	return NewStore(cacheDir)
}

// OpenReadOnly returns a read-only Store rooted at cacheDir.
func (o *Opener) OpenReadOnly(cacheDir string) (ports.FingerprintStore, error) {
	return NewReadOnlyStore(cacheDir), nil
}
