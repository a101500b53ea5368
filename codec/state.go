// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// handle owns one backend memory region.
type handle struct {
	kind     string
	backend  string
	geometry Geometry
	mem      Memory
	once     sync.Once
	closed   bool
}

func (h *handle) release() {
	h.once.Do(func() {
		h.closed = true
		h.mem.Free()
		h.mem = nil

		logrus.WithFields(logrus.Fields{
			"function": "codec.Close",
			"kind":     h.kind,
			"backend":  h.backend,
		}).Debug("Released codec state")
	})
}

// allocState queries the state size, allocates it and hands it to setup.
// The region is freed again if setup fails.
func allocState(b Backend, kind string, size int, g Geometry, cfg ChannelConfig,
	setup func(Memory) error) (*handle, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrInvalidHandle)
	}

	if !g.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGeometry, g)
	}

	if err := cfg.validate(g); err != nil {
		return nil, fmt.Errorf("%w: channels %d, pcm rate %d", err, cfg.Channels, cfg.PCMSampleRateHz)
	}

	if size <= 0 {
		return nil, fmt.Errorf("%w: %s state size %d for %s", ErrInvalidGeometry, kind, size, g)
	}

	mem, err := b.Alloc(size)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "codec.allocState",
			"kind":     kind,
			"size":     size,
			"error":    err.Error(),
		}).Error("Codec state allocation failed")
		return nil, fmt.Errorf("%s state (%d bytes): %w", kind, size, err)
	}
	if mem == nil {
		return nil, fmt.Errorf("%w: %s state (%d bytes)", ErrAllocation, kind, size)
	}

	if err := setup(mem); err != nil {
		mem.Free()
		return nil, fmt.Errorf("setup %s for %s: %w", kind, g, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "codec.allocState",
		"kind":     kind,
		"backend":  b.Name(),
		"size":     size,
		"geometry": g.String(),
	}).Debug("Created codec state")

	return &handle{kind: kind, backend: b.Name(), geometry: g, mem: mem}, nil
}

// Encoder is an exclusively owned encoder state.
// It is not safe for concurrent use.
type Encoder struct {
	h   *handle
	enc FrameEncoder
}

// NewEncoder allocates and sets up an encoder for g.
func NewEncoder(b Backend, g Geometry, cfg ChannelConfig) (*Encoder, error) {
	e := &Encoder{}

	var size int
	if b != nil {
		size = b.EncoderSize(g.FrameDurationUs, g.SampleRateHz)
	}

	h, err := allocState(b, "encoder", size, g, cfg, func(mem Memory) error {
		enc, err := b.SetupEncoder(g, cfg, mem)
		if err != nil {
			return err
		}
		if enc == nil {
			return ErrInvalidGeometry
		}
		e.enc = enc
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.h = h
	return e, nil
}

// Geometry of the frames this encoder accepts.
func (e *Encoder) Geometry() Geometry { return e.h.geometry }

// Closed reports whether Close was called.
func (e *Encoder) Closed() bool { return e.h.closed }

// EncodeFrame encodes one PCM frame of Geometry().BytesPerFrame bytes.
func (e *Encoder) EncodeFrame(pcm, out []byte) error {
	if e.h.closed {
		return ErrClosed
	}
	if len(pcm) != e.h.geometry.BytesPerFrame {
		return fmt.Errorf("%w: pcm frame %d bytes, want %d",
			ErrGeometryMismatch, len(pcm), e.h.geometry.BytesPerFrame)
	}
	return e.enc.EncodeFrame(pcm, out)
}

// Close frees the encoder state. Later calls are no-ops.
func (e *Encoder) Close() error {
	e.h.release()
	e.enc = nil
	return nil
}

// Decoder is an exclusively owned decoder state.
// It is not safe for concurrent use.
type Decoder struct {
	h   *handle
	dec FrameDecoder
}

// NewDecoder allocates and sets up a decoder for g.
func NewDecoder(b Backend, g Geometry, cfg ChannelConfig) (*Decoder, error) {
	d := &Decoder{}

	var size int
	if b != nil {
		size = b.DecoderSize(g.FrameDurationUs, g.SampleRateHz)
	}

	h, err := allocState(b, "decoder", size, g, cfg, func(mem Memory) error {
		dec, err := b.SetupDecoder(g, cfg, mem)
		if err != nil {
			return err
		}
		if dec == nil {
			return ErrInvalidGeometry
		}
		d.dec = dec
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.h = h
	return d, nil
}

// Geometry of the frames this decoder produces.
func (d *Decoder) Geometry() Geometry { return d.h.geometry }

// Closed reports whether Close was called.
func (d *Decoder) Closed() bool { return d.h.closed }

// DecodeFrame decodes one encoded frame into Geometry().BytesPerFrame bytes.
func (d *Decoder) DecodeFrame(in, pcm []byte) error {
	if d.h.closed {
		return ErrClosed
	}
	if len(pcm) != d.h.geometry.BytesPerFrame {
		return fmt.Errorf("%w: pcm frame %d bytes, want %d",
			ErrGeometryMismatch, len(pcm), d.h.geometry.BytesPerFrame)
	}
	return d.dec.DecodeFrame(in, pcm)
}

// Close frees the decoder state. Later calls are no-ops.
func (d *Decoder) Close() error {
	d.h.release()
	d.dec = nil
	return nil
}

// WithEncoder runs fn with a fresh encoder that is closed when fn returns.
func WithEncoder(b Backend, g Geometry, cfg ChannelConfig, fn func(*Encoder) error) error {
	enc, err := NewEncoder(b, g, cfg)
	if err != nil {
		return err
	}
	defer enc.Close()

	return fn(enc)
}

// WithDecoder runs fn with a fresh decoder that is closed when fn returns.
func WithDecoder(b Backend, g Geometry, cfg ChannelConfig, fn func(*Decoder) error) error {
	dec, err := NewDecoder(b, g, cfg)
	if err != nil {
		return err
	}
	defer dec.Close()

	return fn(dec)
}
