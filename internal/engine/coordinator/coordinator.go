// Package coordinator sequences the phases of an incremental export run.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/inkcache/internal/engine/compositor"
	"go.trai.ch/inkcache/internal/engine/fingerprint"
	"go.trai.ch/inkcache/internal/engine/instructions"
	"go.trai.ch/zerr"
)

// Coordinator runs classify, export, composite and thumbnail in order.
// No phase starts before the previous one has finished, and any failure
// aborts the run.
type Coordinator struct {
	opener      ports.StoreOpener
	hasher      ports.Hasher
	verifier    ports.Verifier
	telemetry   ports.Telemetry
	thumbnailer ports.Thumbnailer
	logger      ports.Logger
}

// New creates a new Coordinator.
func New(
	opener ports.StoreOpener,
	hasher ports.Hasher,
	verifier ports.Verifier,
	telemetry ports.Telemetry,
	thumbnailer ports.Thumbnailer,
	logger ports.Logger,
) *Coordinator {
	return &Coordinator{
		opener:      opener,
		hasher:      hasher,
		verifier:    verifier,
		telemetry:   telemetry,
		thumbnailer: thumbnailer,
		logger:      logger,
	}
}

// Run exports rc.Document into rc.Layout with renderer and returns the
// final run context. Every error is joined with domain.ErrExportFailed.
func (c *Coordinator) Run(ctx context.Context, renderer ports.Renderer, rc domain.RunContext) (domain.RunContext, error) {
	rc, err := c.run(ctx, renderer, rc)
	if err != nil {
		return rc, errors.Join(domain.ErrExportFailed, err)
	}
	return rc, nil
}

func (c *Coordinator) run(ctx context.Context, renderer ports.Renderer, rc domain.RunContext) (domain.RunContext, error) {
	if rc.Document == nil {
		return rc, zerr.Wrap(domain.ErrMalformedDocument, "no document to export")
	}
	for _, n := range rc.Document.Nodes {
		if err := domain.ValidateNodeID(n.ID); err != nil {
			return rc, zerr.With(fmt.Errorf("%w: %w", domain.ErrMalformedDocument, err), "node_id", n.ID)
		}
	}

	store, err := c.prepare(rc.Layout)
	if err != nil {
		return rc, err
	}

	phases := []func(context.Context, ports.Renderer, ports.FingerprintStore, domain.RunContext) (domain.RunContext, error){
		c.classify,
		c.export,
		c.composite,
		c.thumbnail,
	}
	for _, phase := range phases {
		if rc, err = phase(ctx, renderer, store, rc); err != nil {
			return rc, err
		}
	}

	rc.Summary.OutputPath = rc.Layout.OutputPath()
	return rc, nil
}

// prepare creates the output layout and opens the fingerprint store.
func (c *Coordinator) prepare(layout domain.Layout) (ports.FingerprintStore, error) {
	if layout.OutputDir == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, domain.ErrMissingOutputDir)
	}
	if err := os.MkdirAll(layout.CacheDir(), domain.DirPerm); err != nil {
		return nil, zerr.With(
			fmt.Errorf("%w: %w: %w", domain.ErrConfiguration, domain.ErrOutputDirCreateFailed, err),
			"path", layout.CacheDir())
	}

	store, err := c.opener.Open(layout.CacheDir())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
	}
	return store, nil
}

func (c *Coordinator) classify(
	ctx context.Context,
	_ ports.Renderer,
	store ports.FingerprintStore,
	rc domain.RunContext,
) (_ domain.RunContext, err error) {
	start := time.Now()
	ctx, vertex := c.telemetry.Record(ctx, string(domain.PhaseClassify))
	defer func() { vertex.Complete(err) }()

	p, err := fingerprint.Classify(ctx, rc.Document.Nodes, store, c.hasher, fingerprint.Options{Force: rc.Options.Force})
	if err != nil {
		return rc, err
	}

	rc.Partition = p
	rc.Summary.HitCount = p.HitCount()
	rc.Summary.MissCount = p.MissCount()
	rc.Summary.ClassifyDuration = time.Since(start)

	msg := fmt.Sprintf("classified %d nodes: %d hits, %d misses", len(p.All), p.HitCount(), p.MissCount())
	vertex.Log(domain.LogLevelInfo, msg)
	c.logger.Debug(msg)
	return rc, nil
}

// export renders every miss in one renderer invocation. The invocation
// happens even when there are no misses. Hits whose tile has disappeared
// since the previous run are exported along with the misses.
func (c *Coordinator) export(
	ctx context.Context,
	renderer ports.Renderer,
	_ ports.FingerprintStore,
	rc domain.RunContext,
) (_ domain.RunContext, err error) {
	start := time.Now()
	ctx, vertex := c.telemetry.Record(ctx, string(domain.PhaseExport))
	defer func() { vertex.Complete(err) }()

	nodes, err := c.exportSet(rc)
	if err != nil {
		return rc, err
	}
	if len(nodes) == 0 {
		vertex.Cached()
	}

	instr := instructions.Export(instructions.BuildExportBatch(nodes, rc.Layout, rc.Options.DPI))
	if err := renderer.Render(ctx, rc.Document.Path, instr); err != nil {
		return rc, zerr.With(err, "phase", string(domain.PhaseExport))
	}
	if err := compositor.VerifyOutputs(c.verifier, instr, domain.PhaseExport); err != nil {
		return rc, err
	}

	rc.Summary.ExportDuration = time.Since(start)
	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("exported %d nodes", len(nodes)))
	return rc, nil
}

// exportSet returns the misses followed by the hits whose tile is missing,
// all in document order.
func (c *Coordinator) exportSet(rc domain.RunContext) ([]domain.NodeRecord, error) {
	if len(rc.Partition.Hits) == 0 {
		return rc.Partition.Misses, nil
	}

	tiles := make([]string, len(rc.Partition.Hits))
	for i, n := range rc.Partition.Hits {
		tiles[i] = rc.Layout.NodeTilePath(n.ID)
	}
	missing, err := c.verifier.MissingOutputs(tiles)
	if err != nil {
		return nil, zerr.With(err, "phase", string(domain.PhaseExport))
	}
	if len(missing) == 0 {
		return rc.Partition.Misses, nil
	}

	lost := make(map[string]bool, len(missing))
	for _, path := range missing {
		lost[path] = true
	}

	nodes := make([]domain.NodeRecord, 0, len(rc.Partition.Misses)+len(missing))
	for _, cl := range rc.Partition.All {
		if !cl.Status.IsHit() || lost[rc.Layout.NodeTilePath(cl.Node.ID)] {
			nodes = append(nodes, cl.Node)
		}
	}
	c.logger.Warn(fmt.Sprintf("%d cached nodes have no tile and will be exported again", len(missing)))
	return nodes, nil
}

func (c *Coordinator) composite(
	ctx context.Context,
	renderer ports.Renderer,
	_ ports.FingerprintStore,
	rc domain.RunContext,
) (domain.RunContext, error) {
	start := time.Now()

	tiles := make([]string, len(rc.Document.Nodes))
	for i, n := range rc.Document.Nodes {
		tiles[i] = domain.TileName(n.ID)
	}

	comp := compositor.New(renderer, c.verifier, c.telemetry)
	res, err := comp.Composite(ctx, rc.Layout, rc.Document.Geometry, tiles, compositor.Options{
		MaxPerGroup: rc.Options.MaxPerGroup,
		PageOpacity: rc.Options.PageOpacity,
		DPI:         rc.Options.DPI,
	})
	if err != nil {
		return rc, err
	}

	rc.Tiles = tiles
	rc.Summary.GroupCount = len(res.Groups)
	rc.Summary.CompositeDuration = time.Since(start)
	return rc, nil
}

func (c *Coordinator) thumbnail(
	ctx context.Context,
	_ ports.Renderer,
	_ ports.FingerprintStore,
	rc domain.RunContext,
) (_ domain.RunContext, err error) {
	if rc.Options.ThumbnailWidth <= 0 {
		return rc, nil
	}

	_, vertex := c.telemetry.Record(ctx, string(domain.PhaseThumbnail))
	defer func() { vertex.Complete(err) }()

	if err := c.thumbnailer.Thumbnail(rc.Layout.OutputPath(), rc.Layout.ThumbnailPath(), rc.Options.ThumbnailWidth); err != nil {
		return rc, zerr.With(err, "phase", string(domain.PhaseThumbnail))
	}
	return rc, nil
}
