// SPDX-License-Identifier: EPL-2.0

package lc3bridge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
	"github.com/ik5/lc3bridge/internal/observe"
)

// Converter is a codec session: one encoder and one decoder that keep
// their inter-frame state across calls until reset or closed.
//
// Methods are serialised, so a Converter may be shared between
// goroutines, but frames from different callers then interleave in one
// codec history.
type Converter struct {
	backend    codec.Backend
	geometry   codec.Geometry
	channels   codec.ChannelConfig
	frameBytes int
	metrics    *observe.Metrics

	enc    *codec.Encoder
	dec    *codec.Decoder
	closed bool

	mtx *sync.Mutex
}

// NewConverter sets up the encoder and decoder of a session. Without
// options it matches the flat Decode and Encode calls: 10 ms frames at
// 16 kHz, 20-byte LC3 frames, liblc3.
func NewConverter(opts ...Option) (*Converter, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = lc3.New()
	}

	g, err := codec.ComputeGeometry(o.backend, o.frameDurationUs, o.sampleRateHz)
	if err != nil {
		return nil, err
	}

	if err := checkFrameBytes(o.frameBytes); err != nil {
		return nil, err
	}

	metrics := observe.DefaultMetrics()
	if o.meterProvider != nil {
		if metrics, err = observe.NewMetrics(o.meterProvider); err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
	}

	c := &Converter{
		backend:    o.backend,
		geometry:   g,
		channels:   o.channels,
		frameBytes: o.frameBytes,
		metrics:    metrics,
		mtx:        &sync.Mutex{},
	}

	if err := c.openEncoder(); err != nil {
		return nil, err
	}
	if err := c.openDecoder(); err != nil {
		c.closeEncoder()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "NewConverter",
		"backend":     o.backend.Name(),
		"geometry":    g.String(),
		"frame_bytes": o.frameBytes,
	}).Debug("Converter ready")

	return c, nil
}

// Geometry is the PCM frame sizing of the session.
func (c *Converter) Geometry() codec.Geometry { return c.geometry }

// OutputFrameSize is the LC3 frame size in bytes.
func (c *Converter) OutputFrameSize() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	return c.frameBytes
}

// SetOutputFrameSize changes the LC3 frame size used by later Decode and
// Encode calls. The codec state is kept.
func (c *Converter) SetOutputFrameSize(n int) error {
	if err := checkFrameBytes(n); err != nil {
		return err
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return codec.ErrClosed
	}
	c.frameBytes = n
	return nil
}

// Decode decodes every whole LC3 frame in data with the session decoder.
func (c *Converter) Decode(data []byte) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return nil, codec.ErrClosed
	}
	if c.dec == nil {
		if err := c.openDecoder(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	out, err := codec.DecodeStream(data, c.dec, c.frameBytes, c.geometry.BytesPerFrame)
	record(c.metrics, observe.OpDecode, len(data), c.frameBytes, start, err)
	if err != nil {
		c.replaceFailed(observe.OpDecode, err)
		return nil, err
	}
	return out, nil
}

// Encode encodes every whole PCM frame in pcm with the session encoder.
func (c *Converter) Encode(pcm []byte) ([]byte, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return nil, codec.ErrClosed
	}
	if c.enc == nil {
		if err := c.openEncoder(); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	out, err := codec.EncodeStream(pcm, c.enc, c.geometry.BytesPerFrame, c.frameBytes)
	record(c.metrics, observe.OpEncode, len(pcm), c.geometry.BytesPerFrame, start, err)
	if err != nil {
		c.replaceFailed(observe.OpEncode, err)
		return nil, err
	}
	return out, nil
}

// ResetEncoder drops the encoder history. The decoder is untouched.
func (c *Converter) ResetEncoder() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return codec.ErrClosed
	}
	c.closeEncoder()
	return c.openEncoder()
}

// ResetDecoder drops the decoder history. The encoder is untouched.
func (c *Converter) ResetDecoder() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return codec.ErrClosed
	}
	c.closeDecoder()
	return c.openDecoder()
}

// Close releases both handles. Later calls are no-ops.
func (c *Converter) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.closeEncoder()
	c.closeDecoder()

	logrus.WithFields(logrus.Fields{
		"function": "Converter.Close",
		"backend":  c.backend.Name(),
	}).Debug("Converter closed")
	return nil
}

// replaceFailed replaces the handle a frame failure left in an unknown state.
// If setup fails too the handle stays nil and is retried on the next call.
func (c *Converter) replaceFailed(op string, err error) {
	var fe *codec.FrameError
	if !errors.As(err, &fe) {
		return
	}

	var rerr error
	if op == observe.OpEncode {
		c.closeEncoder()
		rerr = c.openEncoder()
	} else {
		c.closeDecoder()
		rerr = c.openDecoder()
	}

	fields := logrus.Fields{
		"function": "Converter.replaceFailed",
		"op":       op,
		"frame":    fe.Index,
	}
	if rerr != nil {
		fields["error"] = rerr.Error()
		logrus.WithFields(fields).Warn("Codec handle could not be recreated")
		return
	}
	logrus.WithFields(fields).Debug("Codec handle recreated after frame failure")
}

func (c *Converter) openEncoder() error {
	enc, err := codec.NewEncoder(c.backend, c.geometry, c.channels)
	if err != nil {
		return err
	}
	c.enc = enc
	c.metrics.HandleOpened(context.Background(), "encoder")
	return nil
}

func (c *Converter) openDecoder() error {
	dec, err := codec.NewDecoder(c.backend, c.geometry, c.channels)
	if err != nil {
		return err
	}
	c.dec = dec
	c.metrics.HandleOpened(context.Background(), "decoder")
	return nil
}

func (c *Converter) closeEncoder() {
	if c.enc == nil {
		return
	}
	_ = c.enc.Close()
	c.enc = nil
	c.metrics.HandleClosed(context.Background(), "encoder")
}

func (c *Converter) closeDecoder() {
	if c.dec == nil {
		return
	}
	_ = c.dec.Close()
	c.dec = nil
	c.metrics.HandleClosed(context.Background(), "decoder")
}

func checkFrameBytes(n int) error {
	if n < codec.MinEncodedFrameBytes || n > codec.MaxEncodedFrameBytes {
		return fmt.Errorf("%w: LC3 frame %d bytes, want %d..%d",
			codec.ErrInvalidFrameSize, n, codec.MinEncodedFrameBytes, codec.MaxEncodedFrameBytes)
	}
	return nil
}
