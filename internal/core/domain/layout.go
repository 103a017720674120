package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "inkcache.yaml"

	// DefaultProjectName is the project subfolder used when none is configured.
	DefaultProjectName = "project_name"

	// DefaultMaxPerGroup is the maximum number of tiles composited in one pass.
	DefaultMaxPerGroup = 20

	// DefaultPageOpacity is the page opacity written to composite documents.
	DefaultPageOpacity = 1.0

	// DefaultPageColor is used when the source document has no named view.
	DefaultPageColor = "#ffffff"

	// DefaultNamedViewID is used when the source document has no named view.
	DefaultNamedViewID = "namedview1"

	// CacheDirName is the name of the per-project cache directory.
	CacheDirName = "cache"

	// OutputFileName is the name of the final composite image.
	OutputFileName = "output.png"

	// ThumbnailFileName is the name of the optional downscaled output.
	ThumbnailFileName = "thumbnail.png"

	// CompositeDocumentPrefix starts the names of synthesized composite documents.
	CompositeDocumentPrefix = "combine_cache"

	// GroupOutputPrefix starts the names of group composite outputs.
	GroupOutputPrefix = "cache_output_"

	// FullDocumentName is the name of the top-level composite document.
	FullDocumentName = CompositeDocumentPrefix + "_full.svg"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Layout resolves every path the exporter reads or writes for one project.
type Layout struct {
	OutputDir   string
	ProjectName string
}

// NewLayout creates a Layout, defaulting the project name.
func NewLayout(outputDir, projectName string) Layout {
	if projectName == "" {
		projectName = DefaultProjectName
	}
	return Layout{OutputDir: outputDir, ProjectName: projectName}
}

// Root returns the project output folder.
func (l Layout) Root() string {
	return filepath.Join(l.OutputDir, l.ProjectName)
}

// CacheDir returns the folder holding node serializations, tiles and
// intermediate composites.
func (l Layout) CacheDir() string {
	return filepath.Join(l.Root(), CacheDirName)
}

// OutputPath returns the path of the final image.
func (l Layout) OutputPath() string {
	return filepath.Join(l.Root(), OutputFileName)
}

// ThumbnailPath returns the path of the downscaled output.
func (l Layout) ThumbnailPath() string {
	return filepath.Join(l.Root(), ThumbnailFileName)
}

// NodeCachePath returns the path of the cached serialization of a node.
func (l Layout) NodeCachePath(nodeID string) string {
	return filepath.Join(l.CacheDir(), nodeID+".svg")
}

// TileName returns the tile file name of a node, relative to the cache dir.
func TileName(nodeID string) string {
	return nodeID + ".png"
}

// NodeTilePath returns the path of the rendered tile of a node.
func (l Layout) NodeTilePath(nodeID string) string {
	return filepath.Join(l.CacheDir(), TileName(nodeID))
}

// GroupDocumentPath returns the path of the composite document of a group.
func (l Layout) GroupDocumentPath(index int) string {
	return filepath.Join(l.CacheDir(), fmt.Sprintf("%s_%03d.svg", CompositeDocumentPrefix, index))
}

// GroupOutputName returns the raster output name of a group, relative to the cache dir.
func GroupOutputName(index int) string {
	return fmt.Sprintf("%s%03d.png", GroupOutputPrefix, index)
}

// GroupOutputPath returns the path of the raster output of a group.
func (l Layout) GroupOutputPath(index int) string {
	return filepath.Join(l.CacheDir(), GroupOutputName(index))
}

// FullDocumentPath returns the path of the top-level composite document.
func (l Layout) FullDocumentPath() string {
	return filepath.Join(l.CacheDir(), FullDocumentName)
}

// ValidateNodeID reports whether id can name a node. The id becomes a file
// name in the cache directory and a token of the renderer action string, so
// it must not contain path separators, action delimiters, whitespace or
// control characters, and it must not collide with compositor artifacts.
func ValidateNodeID(id string) error {
	if id == "" {
		return ErrMissingNodeID
	}
	if id == "." || strings.Contains(id, "..") {
		return ErrInvalidNodeID
	}
	for _, r := range id {
		if r == '/' || r == '\\' || r == ';' || r == ':' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrInvalidNodeID
		}
	}
	if strings.HasPrefix(id, CompositeDocumentPrefix) || strings.HasPrefix(id, GroupOutputPrefix) {
		return fmt.Errorf("%w: %w", ErrInvalidNodeID, ErrReservedNodeID)
	}
	return nil
}
