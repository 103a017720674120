// Package inkscape drives the Inkscape command line as the raster renderer.
package inkscape

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBinary is the executable looked up on PATH when none is configured.
const DefaultBinary = "inkscape"

var (
	_ ports.Renderer        = (*Renderer)(nil)
	_ ports.RendererFactory = (*Factory)(nil)
)

// Renderer implements ports.Renderer by running one Inkscape process per call.
type Renderer struct {
	binary    string
	extraArgs []string
	logger    ports.Logger
}

// NewRenderer creates a Renderer for the given executable.
func NewRenderer(binary string, extraArgs []string, logger ports.Logger) *Renderer {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Renderer{
		binary:    binary,
		extraArgs: append([]string(nil), extraArgs...),
		logger:    logger,
	}
}

// Args returns the command line arguments used for one invocation.
func (r *Renderer) Args(documentPath string, instructions domain.Instructions) []string {
	args := make([]string, 0, len(r.extraArgs)+2)
	args = append(args, r.extraArgs...)
	args = append(args, "--actions="+instructions.String(), documentPath)
	return args
}

// Render runs Inkscape on documentPath and waits for it to exit.
// Process output is forwarded line by line to the logger and, when ctx
// carries a telemetry vertex, to the vertex streams.
func (r *Renderer) Render(ctx context.Context, documentPath string, instructions domain.Instructions) error {
	cmd := exec.CommandContext(ctx, r.binary, r.Args(documentPath, instructions)...) //nolint:gosec // configured renderer

	stdoutLog := &logWriter{logger: r.logger, level: "debug"}
	stderrLog := &logWriter{logger: r.logger, level: "warn"}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	var stdout, stderr io.Writer = stdoutLog, stderrLog
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = io.MultiWriter(stdoutLog, v.Stdout())
		stderr = io.MultiWriter(stderrLog, v.Stderr())
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(
			fmt.Errorf("%w: %w", domain.ErrRenderInvocationFailed, err),
			"exit_code", exitCode),
			"document", documentPath)
	}

	return nil
}

// Factory implements ports.RendererFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory whose renderers log through logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewRenderer returns a renderer for binary.
func (f *Factory) NewRenderer(binary string, extraArgs []string) ports.Renderer {
	return NewRenderer(binary, extraArgs, f.logger)
}

type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if w.level == "debug" {
		w.logger.Debug(msg)
	} else {
		w.logger.Warn(msg)
	}
}
