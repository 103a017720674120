package fingerprint_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/cas"
	"go.trai.ch/inkcache/internal/adapters/fs"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports/mocks"
	"go.trai.ch/inkcache/internal/engine/fingerprint"
	"go.uber.org/mock/gomock"
)

func nodes(n int) []domain.NodeRecord {
	out := make([]domain.NodeRecord, n)
	for i := range out {
		id := fmt.Sprintf("n%02d", i)
		out[i] = domain.NodeRecord{ID: id, Content: []byte(`<rect id="` + id + `"/>`)}
	}
	return out
}

func newStore(t *testing.T) (*cas.Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := cas.NewStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestClassify_FirstRunAllNew(t *testing.T) {
	store, dir := newStore(t)
	in := nodes(5)

	p, err := fingerprint.Classify(context.Background(), in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)

	assert.Empty(t, p.Hits)
	assert.Equal(t, in, p.Misses)
	require.Len(t, p.All, 5)
	for i, c := range p.All {
		assert.Equal(t, domain.CacheStatusNew, c.Status)
		assert.Equal(t, in[i].ID, c.Node.ID)
		assert.NotEmpty(t, c.Fingerprint)

		data, err := os.ReadFile(filepath.Join(dir, in[i].ID+".svg")) //nolint:gosec // test file
		require.NoError(t, err)
		assert.Equal(t, in[i].Content, data)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	store, _ := newStore(t)
	in := nodes(8)
	ctx := context.Background()

	_, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)

	p, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)
	assert.Equal(t, in, p.Hits)
	assert.Empty(t, p.Misses)
	assert.Equal(t, 8, p.HitCount())
	assert.Zero(t, p.MissCount())
}

func TestClassify_ChangeSensitivity(t *testing.T) {
	store, dir := newStore(t)
	in := nodes(6)
	ctx := context.Background()

	_, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)

	// One byte differs in n01, attribute order differs in n04.
	in[1].Content = []byte(`<rect id="n01" />`)
	in[4].Content = []byte(`<rect x="1" id="n04"/>`)

	p, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)

	require.Len(t, p.Misses, 2)
	assert.Equal(t, "n01", p.Misses[0].ID)
	assert.Equal(t, "n04", p.Misses[1].ID)
	assert.Len(t, p.Hits, 4)
	assert.Equal(t, domain.CacheStatusChanged, p.All[1].Status)

	for _, n := range p.Misses {
		data, err := os.ReadFile(filepath.Join(dir, n.ID+".svg")) //nolint:gosec // test file
		require.NoError(t, err)
		assert.Equal(t, n.Content, data)
	}
}

func TestClassify_PreservesOrder(t *testing.T) {
	store, _ := newStore(t)
	in := nodes(64)

	p, err := fingerprint.Classify(context.Background(), in, store, fs.NewHasher(), fingerprint.Options{Concurrency: 7})
	require.NoError(t, err)
	assert.Equal(t, in, p.Misses)
}

func TestClassify_Force(t *testing.T) {
	store, _ := newStore(t)
	in := nodes(3)
	ctx := context.Background()

	_, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)

	p, err := fingerprint.Classify(ctx, in, store, fs.NewHasher(), fingerprint.Options{Force: true})
	require.NoError(t, err)
	assert.Empty(t, p.Hits)
	assert.Equal(t, in, p.Misses)
}

func TestInspect_DoesNotWrite(t *testing.T) {
	store, dir := newStore(t)
	in := nodes(2)

	p, err := fingerprint.Inspect(context.Background(), in, store, fs.NewHasher())
	require.NoError(t, err)
	assert.Len(t, p.Misses, 2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClassify_Empty(t *testing.T) {
	store, _ := newStore(t)

	p, err := fingerprint.Classify(context.Background(), nil, store, fs.NewHasher(), fingerprint.Options{})
	require.NoError(t, err)
	assert.Empty(t, p.Hits)
	assert.Empty(t, p.Misses)
	assert.Empty(t, p.All)
}

func TestClassify_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockFingerprintStore(ctrl)
	hasher := mocks.NewMockHasher(ctrl)
	hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp").AnyTimes()

	readErr := errors.New("disk on fire")
	node := domain.NodeRecord{ID: "a", Content: []byte("<path/>")}

	t.Run("read failure", func(t *testing.T) {
		store.EXPECT().Get("a").Return(nil, readErr)

		_, err := fingerprint.Classify(context.Background(), []domain.NodeRecord{node}, store, hasher, fingerprint.Options{})
		require.ErrorIs(t, err, readErr)
	})

	t.Run("write failure", func(t *testing.T) {
		store.EXPECT().Get("a").Return(nil, nil)
		store.EXPECT().Put(domain.CacheEntry{NodeID: "a", Content: node.Content}).Return(domain.ErrCacheWriteFailed)

		_, err := fingerprint.Classify(context.Background(), []domain.NodeRecord{node}, store, hasher, fingerprint.Options{})
		require.ErrorIs(t, err, domain.ErrCacheWriteFailed)
	})

	t.Run("hit is not rewritten", func(t *testing.T) {
		store.EXPECT().Get("a").Return(&domain.CacheEntry{NodeID: "a", Content: []byte("<path/>")}, nil)

		p, err := fingerprint.Classify(context.Background(), []domain.NodeRecord{node}, store, hasher, fingerprint.Options{})
		require.NoError(t, err)
		assert.Equal(t, []domain.NodeRecord{node}, p.Hits)
		assert.Equal(t, "fp", p.All[0].Fingerprint)
	})
}

func TestClassify_Cancelled(t *testing.T) {
	store, _ := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fingerprint.Classify(ctx, nodes(3), store, fs.NewHasher(), fingerprint.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompare(t *testing.T) {
	node := domain.NodeRecord{ID: "a", Content: []byte("x")}

	assert.Equal(t, domain.CacheStatusNew, fingerprint.Compare(node, nil))
	assert.Equal(t, domain.CacheStatusHit, fingerprint.Compare(node, &domain.CacheEntry{Content: []byte("x")}))
	assert.Equal(t, domain.CacheStatusChanged, fingerprint.Compare(node, &domain.CacheEntry{Content: []byte("y")}))
}
