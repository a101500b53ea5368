// SPDX-License-Identifier: EPL-2.0

package lc3bridge

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/ik5/lc3bridge/codec"
)

// Option configures a Converter.
type Option func(*options)

type options struct {
	backend         codec.Backend
	frameDurationUs int
	sampleRateHz    int
	frameBytes      int
	channels        codec.ChannelConfig
	meterProvider   metric.MeterProvider
}

func defaultOptions() options {
	return options{
		frameDurationUs: FrameDurationUs,
		sampleRateHz:    SampleRateHz,
		frameBytes:      EncodedFrameBytes,
		channels:        codec.Mono,
	}
}

// WithBackend replaces the liblc3 backend, e.g. with a test double.
func WithBackend(b codec.Backend) Option {
	return func(o *options) { o.backend = b }
}

func WithFrameDuration(us int) Option {
	return func(o *options) { o.frameDurationUs = us }
}

func WithSampleRate(hz int) Option {
	return func(o *options) { o.sampleRateHz = hz }
}

// WithEncodedFrameSize sets the LC3 frame size in bytes: the stride of
// Decode input and the size of every Encode output frame.
func WithEncodedFrameSize(n int) Option {
	return func(o *options) { o.frameBytes = n }
}

func WithChannelConfig(cfg codec.ChannelConfig) Option {
	return func(o *options) { o.channels = cfg }
}

// WithMeterProvider records the converter's metrics on mp instead of the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) { o.meterProvider = mp }
}
