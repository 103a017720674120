// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/inkcache/internal/core/domain"
)

// Renderer executes declarative render instructions against a vector document.
//
// The renderer is a single-instance resource: callers never issue
// overlapping invocations.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render runs the renderer once on documentPath with the given
	// instructions. It returns an error if the external process fails.
	Render(ctx context.Context, documentPath string, instructions domain.Instructions) error
}

// RendererFactory builds a Renderer for a configured executable.
type RendererFactory interface {
	// NewRenderer returns a renderer invoking binary with extraArgs prepended
	// to every invocation.
	NewRenderer(binary string, extraArgs []string) Renderer
}
