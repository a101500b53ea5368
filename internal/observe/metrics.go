// SPDX-License-Identifier: EPL-2.0

// Package observe holds the OpenTelemetry instruments of the bridge.
//
// Library code records through a *Metrics; DefaultMetrics is bound to the
// global meter provider and tests build their own with NewMetrics and a
// ManualReader.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/ik5/lc3bridge"

// Operation attribute values.
const (
	OpEncode = "encode"
	OpDecode = "decode"
)

type Metrics struct {
	// FramesEncoded and FramesDecoded count frames that went through the
	// codec successfully.
	FramesEncoded metric.Int64Counter
	FramesDecoded metric.Int64Counter

	// FrameFailures counts aborted stream calls. Attribute: op.
	FrameFailures metric.Int64Counter

	// DroppedBytes counts trailing input bytes that did not fill a frame.
	// Attribute: op.
	DroppedBytes metric.Int64Counter

	// DenoiseFrames counts frames run through a denoiser.
	DenoiseFrames metric.Int64Counter

	// ActiveHandles tracks live codec state handles, whether held by a
	// session or by a single flat call. Attribute: kind.
	ActiveHandles metric.Int64UpDownCounter

	// StreamDuration is the wall time of one stream call. Attribute: op.
	StreamDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1,
}

func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.FramesEncoded, err = m.Int64Counter("lc3bridge.frames.encoded",
		metric.WithDescription("PCM frames encoded to LC3."),
	); err != nil {
		return nil, err
	}
	if met.FramesDecoded, err = m.Int64Counter("lc3bridge.frames.decoded",
		metric.WithDescription("LC3 frames decoded to PCM."),
	); err != nil {
		return nil, err
	}
	if met.FrameFailures, err = m.Int64Counter("lc3bridge.frame.failures",
		metric.WithDescription("Stream calls aborted by a frame failure, by op."),
	); err != nil {
		return nil, err
	}
	if met.DroppedBytes, err = m.Int64Counter("lc3bridge.dropped_bytes",
		metric.WithDescription("Trailing input bytes dropped for not filling a frame, by op."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if met.DenoiseFrames, err = m.Int64Counter("lc3bridge.denoise.frames",
		metric.WithDescription("Frames run through a denoiser."),
	); err != nil {
		return nil, err
	}
	if met.ActiveHandles, err = m.Int64UpDownCounter("lc3bridge.active_handles",
		metric.WithDescription("Live codec state handles, by kind."),
	); err != nil {
		return nil, err
	}
	if met.StreamDuration, err = m.Float64Histogram("lc3bridge.stream.duration",
		metric.WithDescription("Wall time of one stream call, by op."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the instance bound to otel.GetMeterProvider,
// creating it on first use.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordStream records a finished stream call of frames frames.
func (m *Metrics) RecordStream(ctx context.Context, op string, frames, dropped int, elapsed time.Duration) {
	opAttr := metric.WithAttributes(attribute.String("op", op))

	switch op {
	case OpEncode:
		m.FramesEncoded.Add(ctx, int64(frames))
	case OpDecode:
		m.FramesDecoded.Add(ctx, int64(frames))
	}
	if dropped > 0 {
		m.DroppedBytes.Add(ctx, int64(dropped), opAttr)
	}
	m.StreamDuration.Record(ctx, elapsed.Seconds(), opAttr)
}

func (m *Metrics) RecordFrameFailure(ctx context.Context, op string) {
	m.FrameFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// HandleOpened and HandleClosed keep ActiveHandles in step with the
// encoder and decoder handles held by sessions and by flat calls.
func (m *Metrics) HandleOpened(ctx context.Context, kind string) {
	m.ActiveHandles.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *Metrics) HandleClosed(ctx context.Context, kind string) {
	m.ActiveHandles.Add(ctx, -1, metric.WithAttributes(attribute.String("kind", kind)))
}
