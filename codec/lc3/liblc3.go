// SPDX-License-Identifier: EPL-2.0

//go:build cgo && lc3

package lc3

/*
#cgo LDFLAGS: -llc3 -lm
#include <stdlib.h>
#include <lc3.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/ik5/lc3bridge/codec"
)

// New returns the liblc3 backend.
func New() codec.Backend { return native{} }

// Available reports whether the native library is linked in.
func Available() bool { return true }

type native struct{}

func (native) Name() string { return "liblc3" }

func (native) FrameSamples(frameDurationUs, sampleRateHz int) int {
	return int(C.lc3_frame_samples(C.int(frameDurationUs), C.int(sampleRateHz)))
}

func (native) EncoderSize(frameDurationUs, sampleRateHz int) int {
	return int(C.lc3_encoder_size(C.int(frameDurationUs), C.int(sampleRateHz)))
}

func (native) DecoderSize(frameDurationUs, sampleRateHz int) int {
	return int(C.lc3_decoder_size(C.int(frameDurationUs), C.int(sampleRateHz)))
}

// Alloc returns zeroed C memory: liblc3 keeps pointers into the region
// between calls, which Go memory must not be used for.
func (native) Alloc(size int) (codec.Memory, error) {
	p := C.calloc(1, C.size_t(size))
	if p == nil {
		return nil, fmt.Errorf("%w: calloc %d bytes", codec.ErrAllocation, size)
	}
	return &cMemory{ptr: p, size: size}, nil
}

func (native) SetupEncoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameEncoder, error) {
	m, ok := mem.(*cMemory)
	if !ok || m.ptr == nil {
		return nil, codec.ErrInvalidHandle
	}

	h := C.lc3_setup_encoder(C.int(g.FrameDurationUs), C.int(g.SampleRateHz),
		C.int(cfg.PCMRate(g)), m.ptr)
	if h == nil {
		return nil, codec.ErrInvalidGeometry
	}
	return &encoder{h: h}, nil
}

func (native) SetupDecoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameDecoder, error) {
	m, ok := mem.(*cMemory)
	if !ok || m.ptr == nil {
		return nil, codec.ErrInvalidHandle
	}

	h := C.lc3_setup_decoder(C.int(g.FrameDurationUs), C.int(g.SampleRateHz),
		C.int(cfg.PCMRate(g)), m.ptr)
	if h == nil {
		return nil, codec.ErrInvalidGeometry
	}
	return &decoder{h: h}, nil
}

type cMemory struct {
	ptr  unsafe.Pointer
	size int
}

func (m *cMemory) Len() int { return m.size }

func (m *cMemory) Free() {
	if m.ptr == nil {
		return
	}
	C.free(m.ptr)
	m.ptr = nil
}

type encoder struct {
	h C.lc3_encoder_t
}

func (e *encoder) EncodeFrame(pcm, out []byte) error {
	if len(pcm) == 0 || len(out) == 0 {
		return codec.ErrInvalidFrameSize
	}

	rc := C.lc3_encode(e.h, C.LC3_PCM_FORMAT_S16,
		unsafe.Pointer(&pcm[0]), 1,
		C.int(len(out)), unsafe.Pointer(&out[0]))
	if rc < 0 {
		return fmt.Errorf("lc3_encode returned %d", int(rc))
	}
	return nil
}

type decoder struct {
	h C.lc3_decoder_t
}

// DecodeFrame returns nil when liblc3 applied packet loss concealment
// (return code 1); only negative codes are failures.
func (d *decoder) DecodeFrame(in, pcm []byte) error {
	if len(in) == 0 || len(pcm) == 0 {
		return codec.ErrInvalidFrameSize
	}

	rc := C.lc3_decode(d.h,
		unsafe.Pointer(&in[0]), C.int(len(in)),
		C.LC3_PCM_FORMAT_S16, unsafe.Pointer(&pcm[0]), 1)
	if rc < 0 {
		return fmt.Errorf("lc3_decode returned %d", int(rc))
	}
	return nil
}
