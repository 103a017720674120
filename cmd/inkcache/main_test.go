package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/inkcache/internal/adapters/cas"
	"go.trai.ch/inkcache/internal/adapters/fs"
	"go.trai.ch/inkcache/internal/adapters/telemetry"
	"go.trai.ch/inkcache/internal/app"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports/mocks"
	"go.trai.ch/inkcache/internal/engine/coordinator"
	"go.uber.org/mock/gomock"
)

func newComponents(t *testing.T) (*app.Components, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(
		mockLoader,
		mocks.NewMockDocumentLoader(ctrl),
		mocks.NewMockRendererFactory(ctrl),
		coordinator.New(
			cas.NewOpener(),
			fs.NewHasher(),
			fs.NewVerifier(),
			telemetry.NewNoOp(),
			mocks.NewMockThumbnailer(ctrl),
			mockLogger,
		),
		cas.NewOpener(),
		fs.NewHasher(),
		fs.NewWalker(),
		nil,
		mockLogger,
	)

	return &app.Components{
		App:       application,
		Logger:    mockLogger,
		Telemetry: telemetry.NewNoOp(),
	}, mockLoader, mockLogger
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _, _ := newComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "inkcache version")
}

// TestRun_GlobalFlags verifies that the logging flags parse on every command.
func TestRun_GlobalFlags(t *testing.T) {
	components, _, _ := newComponents(t)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(),
		[]string{"--verbose", "--log-format", "json", "version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "inkcache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when
// the command fails.
func TestRun_ExecutionError(t *testing.T) {
	components, mockLoader, mockLogger := newComponents(t)
	mockLoader.EXPECT().Load("").Return(domain.DefaultSettings(), nil)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrMissingOutputDir)
	})

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"export", "drawing.svg"}, new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.True(t, cleaned)
}

// TestRun_Clean verifies a full command round trip through the real app.
func TestRun_Clean(t *testing.T) {
	components, mockLoader, mockLogger := newComponents(t)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

	outDir := t.TempDir()
	cacheDir := domain.NewLayout(outDir, "poster").CacheDir()
	if err := os.MkdirAll(cacheDir, domain.DirPerm); err != nil {
		t.Fatalf("failed to create cache dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, "a.svg"), []byte("<rect/>"), 0o600); err != nil {
		t.Fatalf("failed to write cache file: %v", err)
	}

	mockLoader.EXPECT().Load("custom.yaml").Return(domain.DefaultSettings(), nil)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}
	exitCode := run(context.Background(),
		[]string{"clean", "-c", "custom.yaml", "-o", outDir, "-p", "poster"},
		new(bytes.Buffer), new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.NoDirExists(t, cacheDir)
}
