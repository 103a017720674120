package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/fs"
)

func TestWalker_CachedNodeIDs(t *testing.T) {
	cacheDir := t.TempDir()
	walker := fs.NewWalker()

	for _, name := range []string{
		"b.svg",
		"a.svg",
		"a.png",
		"combine_cache_000.svg",
		"combine_cache_full.svg",
		"cache_output_000.png",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(cacheDir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(cacheDir, "nested.svg"), 0o750))

	var ids []string
	for id, err := range walker.CachedNodeIDs(cacheDir) {
		require.NoError(t, err)
		ids = append(ids, id)
	}

	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestWalker_CachedNodeIDs_MissingDir(t *testing.T) {
	walker := fs.NewWalker()

	count := 0
	for range walker.CachedNodeIDs(filepath.Join(t.TempDir(), "absent")) {
		count++
	}
	assert.Zero(t, count)
}

func TestWalker_CachedNodeIDs_EarlyStop(t *testing.T) {
	cacheDir := t.TempDir()
	walker := fs.NewWalker()

	for _, name := range []string{"a.svg", "b.svg", "c.svg"} {
		require.NoError(t, os.WriteFile(filepath.Join(cacheDir, name), []byte("x"), 0o600))
	}

	var ids []string
	for id := range walker.CachedNodeIDs(cacheDir) {
		ids = append(ids, id)
		if len(ids) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, ids)
}
