// SPDX-License-Identifier: EPL-2.0

//go:build !cgo || !lc3

package lc3

import (
	"fmt"

	"github.com/ik5/lc3bridge/codec"
)

// New returns a backend that knows the LC3 frame geometry but cannot
// encode or decode. Build with -tags lc3 to link liblc3.
func New() codec.Backend { return unavailable{} }

// Available reports whether the native library is linked in.
func Available() bool { return false }

type unavailable struct{}

func (unavailable) Name() string { return "lc3-unavailable" }

func (unavailable) FrameSamples(frameDurationUs, sampleRateHz int) int {
	return FrameSamples(frameDurationUs, sampleRateHz)
}

func (unavailable) EncoderSize(frameDurationUs, sampleRateHz int) int {
	return stateSize(frameDurationUs, sampleRateHz)
}

func (unavailable) DecoderSize(frameDurationUs, sampleRateHz int) int {
	return stateSize(frameDurationUs, sampleRateHz)
}

func (unavailable) Alloc(size int) (codec.Memory, error) {
	return nil, fmt.Errorf("%w: built without the lc3 tag", codec.ErrUnavailable)
}

func (unavailable) SetupEncoder(codec.Geometry, codec.ChannelConfig, codec.Memory) (codec.FrameEncoder, error) {
	return nil, codec.ErrUnavailable
}

func (unavailable) SetupDecoder(codec.Geometry, codec.ChannelConfig, codec.Memory) (codec.FrameDecoder, error) {
	return nil, codec.ErrUnavailable
}

// stateSize is non-zero for valid configurations so that callers reach
// Alloc and get ErrUnavailable rather than a geometry error.
func stateSize(frameDurationUs, sampleRateHz int) int {
	ns := FrameSamples(frameDurationUs, sampleRateHz)
	if ns < 0 {
		return 0
	}
	return ns * 4
}
