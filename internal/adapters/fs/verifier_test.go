package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/fs"
)

func TestVerifier_MissingOutputs(t *testing.T) {
	tmpDir := t.TempDir()
	verifier := fs.NewVerifier()

	present := filepath.Join(tmpDir, "a.png")
	empty := filepath.Join(tmpDir, "b.png")
	absent := filepath.Join(tmpDir, "c.png")
	dir := filepath.Join(tmpDir, "d.png")

	require.NoError(t, os.WriteFile(present, []byte("png"), 0o600))
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	require.NoError(t, os.Mkdir(dir, 0o750))

	// Case 1: All outputs exist
	missing, err := verifier.MissingOutputs([]string{present})
	require.NoError(t, err)
	assert.Empty(t, missing)

	// Case 2: Absent, empty and directory outputs are all reported in order
	missing, err = verifier.MissingOutputs([]string{present, empty, absent, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{empty, absent, dir}, missing)

	// Case 3: No outputs
	missing, err = verifier.MissingOutputs(nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
}
