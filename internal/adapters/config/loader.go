// Package config provides the configuration loader for inkcache.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
	getwd  func() (string, error)
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, getwd: os.Getwd}
}

// Load reads the configuration file at path. With an empty path the loader
// looks for inkcache.yaml in the working directory and returns the defaults
// when there is none.
func (l *Loader) Load(path string) (domain.Settings, error) {
	if path == "" {
		cwd, err := l.getwd()
		if err != nil {
			return domain.Settings{}, zerr.Wrap(err, "failed to get current working directory")
		}
		candidate := filepath.Join(cwd, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				l.logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
				return domain.DefaultSettings(), nil
			}
			return domain.Settings{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigReadFailed, err), "path", candidate)
		}
		path = candidate
	}

	l.logger.Debug("loading configuration from " + path)
	return Load(path)
}

// Load reads a configuration file and merges it over the defaults.
func Load(path string) (domain.Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return domain.Settings{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigReadFailed, err), "path", path)
	}

	var file Inkfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, err), "path", path)
	}

	return file.settings(filepath.Dir(path)), nil
}

// settings merges the file over the defaults. A relative output directory
// is resolved against the directory holding the file.
func (f *Inkfile) settings(baseDir string) domain.Settings {
	s := domain.DefaultSettings()

	if f.OutputDirectory != "" {
		s.OutputDir = f.OutputDirectory
		if !filepath.IsAbs(s.OutputDir) {
			s.OutputDir = filepath.Join(baseDir, s.OutputDir)
		}
	}
	if f.ProjectName != "" {
		s.ProjectName = f.ProjectName
	}
	if f.DPI != nil {
		dpi := *f.DPI
		s.DPI = &dpi
	}
	if f.PageOpacity != nil {
		s.PageOpacity = *f.PageOpacity
	}
	if f.MaxPerGroup != nil {
		s.MaxPerGroup = *f.MaxPerGroup
	}
	if f.Renderer.Binary != "" {
		s.RendererBinary = f.Renderer.Binary
	}
	s.RendererArgs = f.Renderer.ExtraArgs
	s.ThumbnailWidth = f.ThumbnailWidth

	return s
}
