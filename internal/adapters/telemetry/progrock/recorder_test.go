package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inkcache/internal/adapters/telemetry/progrock"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
)

func TestNew(t *testing.T) {
	recorder := progrock.New()
	assert.NotNil(t, recorder)
	assert.Empty(t, recorder.Recorded())
}

func TestRecorder_Phases(t *testing.T) {
	recorder := progrock.New()
	ctx := context.Background()

	classifyCtx, classify := recorder.Record(ctx, "classify")
	fromCtx, ok := ports.VertexFromContext(classifyCtx)
	require.True(t, ok)
	assert.Same(t, classify, fromCtx)

	_, err := classify.Stdout().Write([]byte("3 hits, 1 miss\n"))
	require.NoError(t, err)
	classify.Log(domain.LogLevelDebug, "debug msg")
	classify.Complete(nil)

	_, export := recorder.Record(ctx, "export")
	export.Cached()
	export.Complete(nil)

	_, composite := recorder.Record(ctx, "composite group 000")
	composite.Log(domain.LogLevelError, "renderer failed")
	composite.Complete(errors.New("renderer failed"))

	assert.Equal(t, []string{"classify", "export", "composite group 000"}, recorder.Recorded())
	require.NoError(t, recorder.Close())
}
