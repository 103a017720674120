package compositor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/inkcache/internal/engine/instructions"
	"go.trai.ch/zerr"
)

// GroupPageOpacity is the page opacity of per-group composites. Group
// outputs are overlaid by the top-level pass, so their background must stay
// transparent.
const GroupPageOpacity = 0.0

// Options controls a composite pass.
type Options struct {
	MaxPerGroup int
	PageOpacity float64
	DPI         *float64
}

// Result describes the files produced by a composite pass.
type Result struct {
	Groups     []domain.TileGroup
	OutputPath string
}

// Compositor merges tiles into the final image. Renderer invocations are
// issued one at a time.
type Compositor struct {
	renderer  ports.Renderer
	verifier  ports.Verifier
	telemetry ports.Telemetry
}

// New creates a new Compositor.
func New(renderer ports.Renderer, verifier ports.Verifier, telemetry ports.Telemetry) *Compositor {
	return &Compositor{
		renderer:  renderer,
		verifier:  verifier,
		telemetry: telemetry,
	}
}

// Composite renders every group of tiles to a group output, then renders
// the group outputs into the final image. The top-level pass always runs,
// even for a single group. Tiles are file names relative to the cache
// directory of layout.
func (c *Compositor) Composite(
	ctx context.Context,
	layout domain.Layout,
	geometry domain.Geometry,
	tiles []string,
	opts Options,
) (Result, error) {
	groups := PartitionTiles(tiles, opts.MaxPerGroup)

	outputs := make([]string, 0, len(groups))
	for _, group := range groups {
		doc := NewCompositeDocument(geometry, GroupPageOpacity, group.Tiles)
		name := fmt.Sprintf("composite group %03d", group.Index)
		instr := instructions.CompositeInstructions(layout.GroupOutputPath(group.Index), opts.DPI)

		if err := c.pass(ctx, name, layout.GroupDocumentPath(group.Index), doc, instr); err != nil {
			return Result{}, zerr.With(err, "group", group.Index)
		}
		outputs = append(outputs, domain.GroupOutputName(group.Index))
	}

	full := NewCompositeDocument(geometry, opts.PageOpacity, outputs)
	instr := instructions.CompositeInstructions(layout.OutputPath(), opts.DPI)
	if err := c.pass(ctx, "composite full", layout.FullDocumentPath(), full, instr); err != nil {
		return Result{}, err
	}

	return Result{Groups: groups, OutputPath: layout.OutputPath()}, nil
}

// pass writes doc to docPath, renders it and checks the expected output.
func (c *Compositor) pass(
	ctx context.Context,
	name, docPath string,
	doc domain.CompositeDocument,
	instr domain.Instructions,
) (err error) {
	ctx, vertex := c.telemetry.Record(ctx, name)
	defer func() { vertex.Complete(err) }()

	if err := os.WriteFile(docPath, Render(doc), domain.FilePerm); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrCompositeWriteFailed, err), "path", docPath)
	}

	vertex.Log(domain.LogLevelDebug, fmt.Sprintf("compositing %d images", len(doc.Images)))
	if err := c.renderer.Render(ctx, docPath, instr); err != nil {
		return zerr.With(err, "phase", string(domain.PhaseComposite))
	}

	return VerifyOutputs(c.verifier, instr, domain.PhaseComposite)
}

// VerifyOutputs returns ErrRenderOutputMissing when the renderer did not
// write every output named by instr.
func VerifyOutputs(verifier ports.Verifier, instr domain.Instructions, phase domain.Phase) error {
	missing, err := verifier.MissingOutputs(instr.Outputs)
	if err != nil {
		return zerr.With(err, "phase", string(phase))
	}
	if len(missing) > 0 {
		return zerr.With(zerr.With(
			zerr.Wrap(domain.ErrRenderOutputMissing, "renderer output check failed"),
			"missing", strings.Join(missing, ", ")),
			"phase", string(phase))
	}
	return nil
}
