package domain

// CacheEntry is the persisted serialization of a node from a previous run.
type CacheEntry struct {
	NodeID  string
	Content []byte
}

// CacheStatus describes how a node compares against its cache entry.
type CacheStatus string

const (
	// CacheStatusHit means the cached content equals the node content.
	CacheStatusHit CacheStatus = "hit"
	// CacheStatusChanged means a cache entry exists but differs from the node content.
	CacheStatusChanged CacheStatus = "changed"
	// CacheStatusNew means no cache entry exists for the node.
	CacheStatusNew CacheStatus = "new"
)

// IsHit reports whether the status avoids a re-render.
func (s CacheStatus) IsHit() bool {
	return s == CacheStatusHit
}

// Classification is the per-node outcome of a cache comparison.
type Classification struct {
	Node        NodeRecord
	Status      CacheStatus
	Fingerprint string
}

// Partition splits the nodes of a document into cache hits and misses.
// Both slices keep document encounter order.
type Partition struct {
	Hits   []NodeRecord
	Misses []NodeRecord
	// All holds every classification in encounter order.
	All []Classification
}

// HitCount returns the number of cache hits.
func (p Partition) HitCount() int {
	return len(p.Hits)
}

// MissCount returns the number of cache misses.
func (p Partition) MissCount() int {
	return len(p.Misses)
}
