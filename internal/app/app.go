// Package app implements the application layer for inkcache.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.trai.ch/inkcache/internal/adapters/watcher"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/inkcache/internal/engine/coordinator"
	"go.trai.ch/inkcache/internal/engine/fingerprint"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	documents    ports.DocumentLoader
	renderers    ports.RendererFactory
	coordinator  *coordinator.Coordinator
	opener       ports.StoreOpener
	hasher       ports.Hasher
	cacheIndex   ports.CacheIndex
	watcher      ports.Watcher
	logger       ports.Logger
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	documents ports.DocumentLoader,
	renderers ports.RendererFactory,
	coord *coordinator.Coordinator,
	opener ports.StoreOpener,
	hasher ports.Hasher,
	cacheIndex ports.CacheIndex,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		documents:    documents,
		renderers:    renderers,
		coordinator:  coord,
		opener:       opener,
		hasher:       hasher,
		cacheIndex:   cacheIndex,
		watcher:      w,
		logger:       log,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounce sets the quiet period used by Watch.
// This is primarily used for testing.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// Overrides holds settings given on the command line. Nil fields keep the
// value from the configuration file.
type Overrides struct {
	OutputDir      *string
	ProjectName    *string
	DPI            *float64
	PageOpacity    *float64
	MaxPerGroup    *int
	RendererBinary *string
	ThumbnailWidth *int
}

// Apply returns s with every set override applied.
func (o Overrides) Apply(s domain.Settings) domain.Settings {
	if o.OutputDir != nil {
		s.OutputDir = *o.OutputDir
	}
	if o.ProjectName != nil {
		s.ProjectName = *o.ProjectName
	}
	if o.DPI != nil {
		dpi := *o.DPI
		s.DPI = &dpi
	}
	if o.PageOpacity != nil {
		s.PageOpacity = *o.PageOpacity
	}
	if o.MaxPerGroup != nil {
		s.MaxPerGroup = *o.MaxPerGroup
	}
	if o.RendererBinary != nil {
		s.RendererBinary = *o.RendererBinary
	}
	if o.ThumbnailWidth != nil {
		s.ThumbnailWidth = *o.ThumbnailWidth
	}
	return s
}

// SettingsOptions selects the configuration file and its overrides.
type SettingsOptions struct {
	ConfigPath string
	Overrides  Overrides
}

// ExportOptions configuration for the Export and Watch methods.
type ExportOptions struct {
	SettingsOptions
	Force bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	SettingsOptions
	// All removes the whole project folder instead of only its cache.
	All bool
}

// StatusReport is the dry-run classification of a document.
type StatusReport struct {
	Nodes []domain.Classification
	// Stale lists cached node ids that no longer appear in the document.
	Stale []string
}

// Settings loads the configuration, applies the overrides and validates the
// result.
func (a *App) Settings(opts SettingsOptions) (domain.Settings, error) {
	settings, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return domain.Settings{}, zerr.Wrap(err, "failed to load configuration")
	}

	settings = opts.Overrides.Apply(settings)
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// Export renders documentPath incrementally into the configured output
// directory.
func (a *App) Export(ctx context.Context, documentPath string, opts ExportOptions) (domain.Summary, error) {
	settings, err := a.Settings(opts.SettingsOptions)
	if err != nil {
		return domain.Summary{}, err
	}
	return a.export(ctx, documentPath, settings, opts.Force)
}

func (a *App) export(ctx context.Context, documentPath string, settings domain.Settings, force bool) (domain.Summary, error) {
	doc, err := a.documents.Load(documentPath)
	if err != nil {
		return domain.Summary{}, errors.Join(domain.ErrExportFailed, err)
	}

	renderer := a.renderers.NewRenderer(settings.RendererBinary, settings.RendererArgs)
	rc, err := a.coordinator.Run(ctx, renderer, domain.RunContext{
		Layout:   settings.Layout(),
		Document: doc,
		Options:  settings.RunOptions(force),
	})
	if err != nil {
		return rc.Summary, err
	}

	a.logger.Info(FormatSummary(rc.Summary))
	return rc.Summary, nil
}

// Status classifies every node of documentPath against the cache without
// writing cache files or invoking the renderer.
func (a *App) Status(ctx context.Context, documentPath string, opts SettingsOptions) (StatusReport, error) {
	settings, err := a.Settings(opts)
	if err != nil {
		return StatusReport{}, err
	}

	doc, err := a.documents.Load(documentPath)
	if err != nil {
		return StatusReport{}, err
	}

	layout := settings.Layout()
	store, err := a.opener.OpenReadOnly(layout.CacheDir())
	if err != nil {
		return StatusReport{}, err
	}

	p, err := fingerprint.Inspect(ctx, doc.Nodes, store, a.hasher)
	if err != nil {
		return StatusReport{}, err
	}

	present := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		present[n.ID] = true
	}

	report := StatusReport{Nodes: p.All}
	for id, err := range a.cacheIndex.CachedNodeIDs(layout.CacheDir()) {
		if err != nil {
			return StatusReport{}, zerr.With(zerr.Wrap(err, "failed to list cache"), "path", layout.CacheDir())
		}
		if !present[id] {
			report.Stale = append(report.Stale, id)
		}
	}
	return report, nil
}

// Watch exports documentPath once and again after every change to the file
// until ctx is cancelled. Failed runs are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, documentPath string, opts ExportOptions) error {
	settings, err := a.Settings(opts.SettingsOptions)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, documentPath); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	runs := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func() {
		select {
		case runs <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			if event.Operation == ports.OpRemove {
				continue
			}
			debouncer.Trigger()
		}
	}()

	force := opts.Force
	for {
		if _, err := a.export(ctx, documentPath, settings, force); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Error(err)
		}
		// Only the first run bypasses the cache.
		force = false
		a.logger.Info(fmt.Sprintf("watching %s for changes", documentPath))

		select {
		case <-ctx.Done():
			return nil
		case <-runs:
		}
	}
}

// Clean removes the cache, or with opts.All the whole project folder.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	settings, err := a.Settings(opts.SettingsOptions)
	if err != nil {
		return err
	}
	layout := settings.Layout()

	var errs error

	// Helper to remove a directory and log the action
	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if opts.All {
		remove(layout.Root(), "project output")
	} else {
		remove(layout.CacheDir(), "export cache")
	}

	return errs
}

// FormatSummary renders the phase timings and counts of a run as one line.
func FormatSummary(s domain.Summary) string {
	return fmt.Sprintf(
		"In %.2f seconds exported %d objects. %d objects were already cached. "+
			"%.2f seconds were spent linking the cache into %d groups. Classification took %.2f seconds.",
		s.ExportDuration.Seconds(),
		s.MissCount,
		s.HitCount,
		s.CompositeDuration.Seconds(),
		s.GroupCount,
		s.ClassifyDuration.Seconds(),
	)
}
