package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Settings is the resolved configuration of an export run, merged from the
// project file and command line flags.
type Settings struct {
	OutputDir      string
	ProjectName    string
	DPI            *float64
	PageOpacity    float64
	MaxPerGroup    int
	RendererBinary string
	RendererArgs   []string
	ThumbnailWidth int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		ProjectName:    DefaultProjectName,
		PageOpacity:    DefaultPageOpacity,
		MaxPerGroup:    DefaultMaxPerGroup,
		RendererBinary: "inkscape",
	}
}

// Layout returns the project layout described by the settings.
func (s Settings) Layout() Layout {
	return NewLayout(s.OutputDir, s.ProjectName)
}

// RunOptions returns the per-run options described by the settings.
func (s Settings) RunOptions(force bool) RunOptions {
	return RunOptions{
		DPI:            s.DPI,
		MaxPerGroup:    s.MaxPerGroup,
		PageOpacity:    s.PageOpacity,
		Force:          force,
		ThumbnailWidth: s.ThumbnailWidth,
	}
}

// Validate checks the merged settings before any work starts. Every
// failure is in the ErrConfiguration class.
func (s Settings) Validate() error {
	switch {
	case s.OutputDir == "":
		return configError(ErrMissingOutputDir)
	case s.DPI != nil && *s.DPI <= 0:
		return zerr.With(configError(ErrInvalidDPI), "dpi", *s.DPI)
	case s.MaxPerGroup < 1:
		return zerr.With(configError(ErrInvalidGroupSize), "max_per_group", s.MaxPerGroup)
	case s.PageOpacity < 0 || s.PageOpacity > 1:
		return zerr.With(configError(ErrInvalidPageOpacity), "page_opacity", s.PageOpacity)
	case s.ThumbnailWidth < 0:
		return zerr.With(configError(ErrInvalidThumbnailWidth), "thumbnail_width", s.ThumbnailWidth)
	}
	return nil
}

func configError(cause error) error {
	return fmt.Errorf("%w: %w", ErrConfiguration, cause)
}
