// SPDX-License-Identifier: EPL-2.0

package observe_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/ik5/lc3bridge/internal/audiotest"
	"github.com/ik5/lc3bridge/internal/observe"
)

func newTestMetrics(t *testing.T) (*observe.Metrics, func(string) int64) {
	t.Helper()
	mp, reader := audiotest.NewMeterProvider(t)

	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)
	return m, func(name string) int64 { return audiotest.Int64Total(t, reader, name) }
}

func TestRecordStream(t *testing.T) {
	t.Parallel()
	m, total := newTestMetrics(t)
	ctx := context.Background()

	m.RecordStream(ctx, observe.OpDecode, 2, 5, time.Millisecond)
	m.RecordStream(ctx, observe.OpEncode, 3, 0, time.Millisecond)
	m.RecordStream(ctx, observe.OpEncode, 1, 7, time.Millisecond)

	assert.EqualValues(t, 2, total("lc3bridge.frames.decoded"))
	assert.EqualValues(t, 4, total("lc3bridge.frames.encoded"))
	assert.EqualValues(t, 12, total("lc3bridge.dropped_bytes"))
}

func TestStreamDurationHistogram(t *testing.T) {
	t.Parallel()
	mp, reader := audiotest.NewMeterProvider(t)
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)

	m.RecordStream(context.Background(), observe.OpDecode, 1, 0, 2*time.Millisecond)
	m.RecordStream(context.Background(), observe.OpDecode, 1, 0, 3*time.Millisecond)

	met := audiotest.FindMetric(audiotest.Collect(t, reader), "lc3bridge.stream.duration")
	require.NotNil(t, met)

	hist, ok := met.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.EqualValues(t, 2, hist.DataPoints[0].Count)
}

func TestFrameFailuresAndHandles(t *testing.T) {
	t.Parallel()
	m, total := newTestMetrics(t)
	ctx := context.Background()

	m.RecordFrameFailure(ctx, observe.OpEncode)
	m.HandleOpened(ctx, "encoder")
	m.HandleOpened(ctx, "decoder")
	m.HandleClosed(ctx, "encoder")

	assert.EqualValues(t, 1, total("lc3bridge.frame.failures"))
	assert.EqualValues(t, 1, total("lc3bridge.active_handles"))
}

func TestDefaultMetricsIsShared(t *testing.T) {
	t.Parallel()
	assert.Same(t, observe.DefaultMetrics(), observe.DefaultMetrics())
}
