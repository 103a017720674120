// Package fingerprint decides which nodes must be re-rendered by comparing
// them against their cached serialization.
package fingerprint

import (
	"bytes"
	"context"
	"runtime"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options controls a classification pass.
type Options struct {
	// Force classifies every node as a miss.
	Force bool
	// DryRun leaves the cache untouched.
	DryRun bool
	// Concurrency bounds the number of nodes compared at once.
	// Zero uses the number of CPUs.
	Concurrency int
}

// Classify partitions nodes into cache hits and misses. A node is a hit only
// when its cached content equals its content byte for byte. Unless DryRun is
// set, the cache entry of every miss is overwritten with the node content
// before Classify returns.
//
// Nodes are compared concurrently; both the hits and the misses of the
// returned partition keep the encounter order of nodes.
func Classify(
	ctx context.Context,
	nodes []domain.NodeRecord,
	store ports.FingerprintStore,
	hasher ports.Hasher,
	opts Options,
) (domain.Partition, error) {
	results := make([]domain.Classification, len(nodes))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, node := range nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := classifyOne(node, store, hasher, opts)
			if err != nil {
				return zerr.With(zerr.With(zerr.Wrap(err, "failed to classify node"),
					"node_id", node.ID),
					"phase", string(domain.PhaseClassify))
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Partition{}, err
	}

	p := domain.Partition{All: results}
	for _, c := range results {
		if c.Status.IsHit() {
			p.Hits = append(p.Hits, c.Node)
		} else {
			p.Misses = append(p.Misses, c.Node)
		}
	}
	return p, nil
}

// Inspect classifies nodes without writing to the cache.
func Inspect(
	ctx context.Context,
	nodes []domain.NodeRecord,
	store ports.FingerprintStore,
	hasher ports.Hasher,
) (domain.Partition, error) {
	return Classify(ctx, nodes, store, hasher, Options{DryRun: true})
}

func classifyOne(
	node domain.NodeRecord,
	store ports.FingerprintStore,
	hasher ports.Hasher,
	opts Options,
) (domain.Classification, error) {
	entry, err := store.Get(node.ID)
	if err != nil {
		return domain.Classification{}, err
	}

	c := domain.Classification{
		Node:        node,
		Status:      Compare(node, entry),
		Fingerprint: hasher.Fingerprint(node.Content),
	}
	if opts.Force && c.Status.IsHit() {
		c.Status = domain.CacheStatusChanged
	}

	if !c.Status.IsHit() && !opts.DryRun {
		if err := store.Put(domain.CacheEntry{NodeID: node.ID, Content: node.Content}); err != nil {
			return domain.Classification{}, err
		}
	}
	return c, nil
}

// Compare returns the cache status of node against entry. A nil entry means
// the node was never cached.
func Compare(node domain.NodeRecord, entry *domain.CacheEntry) domain.CacheStatus {
	switch {
	case entry == nil:
		return domain.CacheStatusNew
	case bytes.Equal(entry.Content, node.Content):
		return domain.CacheStatusHit
	default:
		return domain.CacheStatusChanged
	}
}
