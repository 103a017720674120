package domain

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Phase names the stages of an export run. They label telemetry vertices
// and error metadata.
type Phase string

const (
	// PhaseLoad is the document walk.
	PhaseLoad Phase = "load"
	// PhaseClassify is the cache comparison.
	PhaseClassify Phase = "classify"
	// PhaseExport is the batched render of cache misses.
	PhaseExport Phase = "export"
	// PhaseComposite is the tile compositing.
	PhaseComposite Phase = "composite"
	// PhaseThumbnail is the optional downscale of the output.
	PhaseThumbnail Phase = "thumbnail"
)
