package app_test

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/cas"
	"go.trai.ch/inkcache/internal/adapters/fs"
	"go.trai.ch/inkcache/internal/adapters/telemetry"
	"go.trai.ch/inkcache/internal/app"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/inkcache/internal/core/ports/mocks"
	"go.trai.ch/inkcache/internal/engine/coordinator"
	"go.trai.ch/inkcache/internal/engine/enginetest"
	"go.uber.org/mock/gomock"
)

type fakeWatcher struct {
	events  chan ports.WatchEvent
	started string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan ports.WatchEvent)}
}

func (w *fakeWatcher) Start(_ context.Context, path string) error {
	w.started = path
	return nil
}

func (w *fakeWatcher) Stop() error {
	close(w.events)
	return nil
}

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for e := range w.events {
			if !yield(e) {
				return
			}
		}
	}
}

type harness struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	docs     *mocks.MockDocumentLoader
	logger   *mocks.MockLogger
	renderer *enginetest.Renderer
	watcher  *fakeWatcher
	settings domain.Settings
	infos    []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		loader:   mocks.NewMockConfigLoader(ctrl),
		docs:     mocks.NewMockDocumentLoader(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		renderer: &enginetest.Renderer{},
		watcher:  newFakeWatcher(),
	}
	h.settings = domain.DefaultSettings()
	h.settings.OutputDir = filepath.Join(t.TempDir(), "out")

	h.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		h.infos = append(h.infos, msg)
	}).AnyTimes()

	factory := mocks.NewMockRendererFactory(ctrl)
	factory.EXPECT().NewRenderer("inkscape", gomock.Any()).Return(h.renderer).AnyTimes()

	coord := coordinator.New(
		cas.NewOpener(),
		fs.NewHasher(),
		fs.NewVerifier(),
		telemetry.NewNoOp(),
		mocks.NewMockThumbnailer(ctrl),
		h.logger,
	)

	h.app = app.New(
		h.loader,
		h.docs,
		factory,
		coord,
		cas.NewOpener(),
		fs.NewHasher(),
		fs.NewWalker(),
		h.watcher,
		h.logger,
	)
	return h
}

func (h *harness) layout() domain.Layout {
	return h.settings.Layout()
}

func drawing(contents ...string) *domain.Document {
	doc := &domain.Document{
		Path: "drawing.svg",
		Geometry: domain.Geometry{
			Width: "10", Height: "10", ViewBox: "0 0 10 10", Version: "1.1",
			DocumentID: "svg1", NamedViewID: domain.DefaultNamedViewID, PageColor: domain.DefaultPageColor,
		},
	}
	for _, c := range contents {
		id, _, _ := strings.Cut(c, ":")
		doc.Nodes = append(doc.Nodes, domain.NodeRecord{ID: id, Content: []byte(c)})
	}
	return doc
}

func TestApp_Export(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("").Return(h.settings, nil)
	h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1", "b:1"), nil)

	summary, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MissCount)
	assert.Equal(t, 1, summary.GroupCount)
	assert.Equal(t, h.layout().OutputPath(), summary.OutputPath)
	assert.FileExists(t, h.layout().OutputPath())
	require.NotEmpty(t, h.infos)
	assert.Contains(t, h.infos[len(h.infos)-1], "exported 2 objects. 0 objects were already cached.")
}

func TestApp_Export_Overrides(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("inkcache.yaml").Return(domain.DefaultSettings(), nil)
	h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1"), nil)

	out := h.settings.OutputDir
	project := "poster"
	dpi := 150.0
	_, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{
		SettingsOptions: app.SettingsOptions{
			ConfigPath: "inkcache.yaml",
			Overrides:  app.Overrides{OutputDir: &out, ProjectName: &project, DPI: &dpi},
		},
	})
	require.NoError(t, err)

	assert.FileExists(t, domain.NewLayout(out, project).OutputPath())
	assert.Contains(t, h.renderer.Calls()[0].Actions, "export-dpi:150;")
}

func TestApp_Export_InvalidSettings(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("").Return(domain.DefaultSettings(), nil)

	_, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{})
	require.ErrorIs(t, err, domain.ErrConfiguration)
	require.ErrorIs(t, err, domain.ErrMissingOutputDir)
	assert.Empty(t, h.renderer.Calls())
}

func TestApp_Export_MalformedDocument(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("").Return(h.settings, nil)
	h.docs.EXPECT().Load("drawing.svg").
		Return(nil, domain.ErrMissingNodeID)

	_, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{})
	require.ErrorIs(t, err, domain.ErrExportFailed)
	require.ErrorIs(t, err, domain.ErrMissingNodeID)
	assert.Empty(t, h.renderer.Calls())
}

func TestApp_Status(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("").Return(h.settings, nil).Times(2)
	gomock.InOrder(
		h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1", "b:1", "gone:1"), nil),
		h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1", "b:2", "c:1"), nil),
	)

	_, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{})
	require.NoError(t, err)
	h.renderer.Reset()

	report, err := h.app.Status(context.Background(), "drawing.svg", app.SettingsOptions{})
	require.NoError(t, err)

	require.Len(t, report.Nodes, 3)
	assert.Equal(t, domain.CacheStatusHit, report.Nodes[0].Status)
	assert.Equal(t, domain.CacheStatusChanged, report.Nodes[1].Status)
	assert.Equal(t, domain.CacheStatusNew, report.Nodes[2].Status)
	assert.Equal(t, fs.NewHasher().Fingerprint([]byte("b:2")), report.Nodes[1].Fingerprint)
	assert.Equal(t, []string{"gone"}, report.Stale)

	assert.Empty(t, h.renderer.Calls())
	data, err := os.ReadFile(h.layout().NodeCachePath("b"))
	require.NoError(t, err)
	assert.Equal(t, "b:1", string(data), "status must not write the cache")
	assert.NoFileExists(t, h.layout().NodeCachePath("c"))
}

func TestApp_Status_ReadOnly(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load("").Return(h.settings, nil)
	h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1", "b:1"), nil)

	report, err := h.app.Status(context.Background(), "drawing.svg", app.SettingsOptions{})
	require.NoError(t, err)

	require.Len(t, report.Nodes, 2)
	assert.Equal(t, domain.CacheStatusNew, report.Nodes[0].Status)
	assert.Empty(t, report.Stale)
	assert.NoDirExists(t, h.layout().CacheDir())
	assert.NoDirExists(t, h.settings.OutputDir)
}

func TestApp_Clean(t *testing.T) {
	tests := []struct {
		name       string
		all        bool
		wantOutput bool
	}{
		{name: "cache only", all: false, wantOutput: true},
		{name: "all", all: true, wantOutput: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.loader.EXPECT().Load("").Return(h.settings, nil).Times(2)
			h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1"), nil)

			_, err := h.app.Export(context.Background(), "drawing.svg", app.ExportOptions{})
			require.NoError(t, err)

			err = h.app.Clean(context.Background(), app.CleanOptions{All: tt.all})
			require.NoError(t, err)

			assert.NoDirExists(t, h.layout().CacheDir())
			if tt.wantOutput {
				assert.FileExists(t, h.layout().OutputPath())
			} else {
				assert.NoDirExists(t, h.layout().Root())
			}
		})
	}
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		h.app.WithDebounce(50 * time.Millisecond)
		h.loader.EXPECT().Load("").Return(h.settings, nil)
		h.docs.EXPECT().Load("drawing.svg").Return(drawing("a:1", "b:1"), nil).Times(2)

		ctx, cancel := context.WithCancel(t.Context())
		done := make(chan error, 1)
		go func() {
			done <- h.app.Watch(ctx, "drawing.svg", app.ExportOptions{})
		}()

		synctest.Wait()
		assert.Equal(t, "drawing.svg", h.watcher.started)
		require.Len(t, h.renderer.Calls(), 3)

		// Two writes inside the window produce one run.
		h.watcher.events <- ports.WatchEvent{Path: "drawing.svg", Operation: ports.OpWrite}
		h.watcher.events <- ports.WatchEvent{Path: "drawing.svg", Operation: ports.OpWrite}
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()

		calls := h.renderer.Calls()
		require.Len(t, calls, 6)
		assert.Equal(t, "export-area-page; export-id-only;", calls[3].Actions)

		cancel()
		require.NoError(t, <-done)
	})
}

func TestFormatSummary(t *testing.T) {
	got := app.FormatSummary(domain.Summary{
		ClassifyDuration:  250 * time.Millisecond,
		ExportDuration:    1500 * time.Millisecond,
		CompositeDuration: 2 * time.Second,
		MissCount:         3,
		HitCount:          7,
		GroupCount:        1,
	})
	assert.Equal(t,
		"In 1.50 seconds exported 3 objects. 7 objects were already cached. "+
			"2.00 seconds were spent linking the cache into 1 groups. Classification took 0.25 seconds.",
		got)
}
