package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// MissingOutputs returns the paths that do not exist or are empty. An empty
// file counts as missing because the renderer creates its output before
// writing pixels to it.
func (v *Verifier) MissingOutputs(paths []string) ([]string, error) {
	var missing []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				missing = append(missing, path)
				continue
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat output"), "path", path)
		}
		if info.IsDir() || info.Size() == 0 {
			missing = append(missing, path)
		}
	}
	return missing, nil
}
