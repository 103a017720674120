package config

import "go.trai.ch/inkcache/internal/core/ports"

// NewLoaderInDir returns a loader that resolves the default file in dir.
func NewLoaderInDir(logger ports.Logger, dir string) *Loader {
	return &Loader{logger: logger, getwd: func() (string, error) { return dir, nil }}
}
