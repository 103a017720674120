package ports

import "iter"

// CacheIndex enumerates the entries of a fingerprint cache directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_index.go -destination=mocks/mock_cache_index.go -package=mocks
type CacheIndex interface {
	// CachedNodeIDs yields the id of every cached node serialization.
	CachedNodeIDs(cacheDir string) iter.Seq2[string, error]
}
