package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is the class of errors raised before any work starts.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrMissingOutputDir is returned when no output directory is configured.
	ErrMissingOutputDir = zerr.New("output directory is required")

	// ErrOutputDirCreateFailed is returned when the output layout cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrInvalidDPI is returned when the configured DPI is not positive.
	ErrInvalidDPI = zerr.New("dpi must be a positive number")

	// ErrInvalidGroupSize is returned when max_per_group is smaller than one.
	ErrInvalidGroupSize = zerr.New("max per group must be at least 1")

	// ErrInvalidPageOpacity is returned when page_opacity is outside [0, 1].
	ErrInvalidPageOpacity = zerr.New("page opacity must be between 0 and 1")

	// ErrInvalidThumbnailWidth is returned when thumbnail_width is negative.
	ErrInvalidThumbnailWidth = zerr.New("thumbnail width must not be negative")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMalformedDocument is the class of errors for unusable source documents.
	ErrMalformedDocument = zerr.New("malformed document")

	// ErrDocumentReadFailed is returned when the source document cannot be read.
	ErrDocumentReadFailed = zerr.New("failed to read document")

	// ErrDocumentParseFailed is returned when the source document is not well-formed XML.
	ErrDocumentParseFailed = zerr.New("failed to parse document")

	// ErrMissingNodeID is returned when a shape node has no id attribute.
	ErrMissingNodeID = zerr.New("shape node has no id")

	// ErrInvalidNodeID is returned when a node id cannot name a cache file.
	ErrInvalidNodeID = zerr.New("node id is not a valid file name")

	// ErrReservedNodeID is returned when a node id collides with a compositor artifact name.
	ErrReservedNodeID = zerr.New("node id is reserved for composite files")
	// ErrDuplicateNodeID is returned when two shape nodes share an id.
	ErrDuplicateNodeID = zerr.New("duplicate node id")

	// ErrMissingGeometry is returned when the document root lacks a geometry attribute.
	ErrMissingGeometry = zerr.New("document is missing a geometry attribute")

	// ErrCacheReadFailed is returned when a cache entry exists but cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrRenderInvocationFailed is returned when the external renderer fails.
	ErrRenderInvocationFailed = zerr.New("renderer invocation failed")

	// ErrRenderOutputMissing is returned when the renderer did not write an expected file.
	ErrRenderOutputMissing = zerr.New("renderer did not produce expected output")

	// ErrCompositeWriteFailed is returned when a composite document cannot be written.
	ErrCompositeWriteFailed = zerr.New("failed to write composite document")

	// ErrThumbnailFailed is returned when the thumbnail cannot be produced.
	ErrThumbnailFailed = zerr.New("failed to create thumbnail")

	// ErrExportFailed is joined onto every failure of an export run.
	ErrExportFailed = zerr.New("export failed")
)
