package ports

import "go.trai.ch/inkcache/internal/core/domain"

// FingerprintStore persists the last seen serialization of every node.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type FingerprintStore interface {
	// Get retrieves the cache entry for a node id.
	// Returns nil, nil if not found.
	Get(nodeID string) (*domain.CacheEntry, error)

	// Put stores the cache entry, overwriting any previous one.
	Put(entry domain.CacheEntry) error
}

// StoreOpener opens the fingerprint store rooted at a cache directory.
type StoreOpener interface {
	// Open returns a store reading and writing node serializations in cacheDir.
	Open(cacheDir string) (FingerprintStore, error)
	// OpenReadOnly returns a store that never touches the disk beyond reads.
	// A missing cacheDir behaves as an empty cache.
	OpenReadOnly(cacheDir string) (FingerprintStore, error)
}
