package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/fs"
)

func TestHasher_Fingerprint(t *testing.T) {
	h := fs.NewHasher()

	a := h.Fingerprint([]byte(`<rect id="r1" width="10"/>`))
	b := h.Fingerprint([]byte(`<rect id="r1" width="10"/>`))
	c := h.Fingerprint([]byte(`<rect id="r1" width="11"/>`))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	tmpDir := t.TempDir()
	h := fs.NewHasher()

	path := filepath.Join(tmpDir, "node.svg")
	content := []byte(`<circle id="c1" r="4"/>`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	got, err := h.ComputeFileHash(path)
	require.NoError(t, err)
	assert.Equal(t, h.Fingerprint(content), got)

	_, err = h.ComputeFileHash(filepath.Join(tmpDir, "missing.svg"))
	require.Error(t, err)
}
