// SPDX-License-Identifier: EPL-2.0

package codec

// FrameSampler reports how many samples one frame holds.
// A non-positive answer means the library rejects the parameters.
type FrameSampler interface {
	FrameSamples(frameDurationUs, sampleRateHz int) int
}

// Memory is a zero-initialised region holding codec state.
type Memory interface {
	Len() int
	Free()
}

// FrameEncoder encodes one PCM frame into exactly len(out) bytes.
type FrameEncoder interface {
	EncodeFrame(pcm, out []byte) error
}

// FrameDecoder decodes one encoded frame into exactly len(pcm) bytes.
type FrameDecoder interface {
	DecodeFrame(in, pcm []byte) error
}

// Backend is a native frame codec.
//
// Sizes are in bytes. SetupEncoder and SetupDecoder bind a region returned
// by Alloc; the coder they return is only valid until that region is freed.
type Backend interface {
	FrameSampler

	Name() string
	EncoderSize(frameDurationUs, sampleRateHz int) int
	DecoderSize(frameDurationUs, sampleRateHz int) int
	Alloc(size int) (Memory, error)
	SetupEncoder(g Geometry, cfg ChannelConfig, mem Memory) (FrameEncoder, error)
	SetupDecoder(g Geometry, cfg ChannelConfig, mem Memory) (FrameDecoder, error)
}

// ChannelConfig selects the codec's channel mode.
type ChannelConfig struct {
	// Channels must be 1; interleaved multi-channel PCM is not supported.
	Channels int
	// PCMSampleRateHz is the rate of the PCM side. Zero means the codec rate;
	// any other value must equal it, since frames are sized at the codec rate.
	PCMSampleRateHz int
}

// Mono is the single fixed channel mode used across the bridge.
var Mono = ChannelConfig{Channels: 1}

// PCMRate resolves the PCM sample rate for g.
func (c ChannelConfig) PCMRate(g Geometry) int {
	if c.PCMSampleRateHz > 0 {
		return c.PCMSampleRateHz
	}
	return g.SampleRateHz
}

func (c ChannelConfig) validate(g Geometry) error {
	if c.Channels != 1 {
		return ErrInvalidGeometry
	}
	if c.PCMSampleRateHz != 0 && c.PCMSampleRateHz != g.SampleRateHz {
		return ErrInvalidGeometry
	}
	return nil
}
