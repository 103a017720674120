package fs

import (
	"errors"
	iofs "io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheIndex = (*Walker)(nil)

// Walker lists the node serializations present in a cache directory.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// CachedNodeIDs yields the id of every cached node serialization in
// cacheDir, in lexical order. A missing directory yields nothing.
func (w *Walker) CachedNodeIDs(cacheDir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(cacheDir)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return
			}
			yield("", zerr.With(zerr.Wrap(err, "failed to list cache directory"), "path", cacheDir))
			return
		}

		for _, entry := range entries {
			if w.shouldSkip(entry) {
				continue
			}
			if !yield(strings.TrimSuffix(entry.Name(), ".svg"), nil) {
				return
			}
		}
	}
}

// shouldSkip reports whether a directory entry is not a node serialization.
func (w *Walker) shouldSkip(d iofs.DirEntry) bool {
	if d.IsDir() {
		return true
	}
	name := d.Name()
	if filepath.Ext(name) != ".svg" {
		return true
	}
	return strings.HasPrefix(name, domain.CompositeDocumentPrefix)
}
