// SPDX-License-Identifier: EPL-2.0

package lc3bridge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
	"github.com/ik5/lc3bridge/denoise"
	"github.com/ik5/lc3bridge/internal/observe"
)

// Fixed geometry of the flat Decode and Encode calls.
const (
	FrameDurationUs   = lc3.Duration10000us
	SampleRateHz      = 16000
	EncodedFrameBytes = 20
)

// Decode turns concatenated 20-byte LC3 frames into 16 kHz 16-bit PCM
// using liblc3. Trailing bytes that do not fill a frame are dropped.
func Decode(data []byte) ([]byte, error) {
	return DecodeWith(lc3.New(), data)
}

// Encode turns 16 kHz 16-bit PCM into concatenated 20-byte LC3 frames
// using liblc3. A trailing partial PCM frame is dropped.
func Encode(pcm []byte) ([]byte, error) {
	return EncodeWith(lc3.New(), pcm)
}

// DecodeWith is Decode on an explicit backend. Every call sets up and
// releases its own decoder, so calls share no codec state.
func DecodeWith(b codec.Backend, data []byte) ([]byte, error) {
	return decodeWith(observe.DefaultMetrics(), b, data)
}

// EncodeWith is Encode on an explicit backend. Every call sets up and
// releases its own encoder.
func EncodeWith(b codec.Backend, pcm []byte) ([]byte, error) {
	return encodeWith(observe.DefaultMetrics(), b, pcm)
}

func decodeWith(m *observe.Metrics, b codec.Backend, data []byte) ([]byte, error) {
	g, err := codec.ComputeGeometry(b, FrameDurationUs, SampleRateHz)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var out []byte
	err = codec.WithDecoder(b, g, codec.Mono, func(dec *codec.Decoder) error {
		ctx := context.Background()
		m.HandleOpened(ctx, "decoder")
		defer m.HandleClosed(ctx, "decoder")

		out, err = codec.DecodeStream(data, dec, EncodedFrameBytes, g.BytesPerFrame)
		return err
	})
	record(m, observe.OpDecode, len(data), EncodedFrameBytes, start, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func encodeWith(m *observe.Metrics, b codec.Backend, pcm []byte) ([]byte, error) {
	g, err := codec.ComputeGeometry(b, FrameDurationUs, SampleRateHz)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var out []byte
	err = codec.WithEncoder(b, g, codec.Mono, func(enc *codec.Encoder) error {
		ctx := context.Background()
		m.HandleOpened(ctx, "encoder")
		defer m.HandleClosed(ctx, "encoder")

		out, err = codec.EncodeStream(pcm, enc, g.BytesPerFrame, EncodedFrameBytes)
		return err
	})
	record(m, observe.OpEncode, len(pcm), g.BytesPerFrame, start, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// record reports one stream call. Calls rejected before any frame work
// are not counted.
func record(m *observe.Metrics, op string, inputLen, frameSize int, start time.Time, err error) {
	ctx := context.Background()

	var fe *codec.FrameError
	switch {
	case errors.As(err, &fe):
		m.RecordFrameFailure(ctx, op)
	case err == nil:
		m.RecordStream(ctx, op, codec.FrameCount(inputLen, frameSize),
			codec.Remainder(inputLen, frameSize), time.Since(start))
	}
}

// denoisers backs the integer-handle denoise calls.
var denoisers = denoise.NewRegistry(denoise.Default())

// CreateDenoiseState creates a denoiser and returns its handle. RNNoise is
// used when built with the "rnnoise" tag; otherwise frames pass through.
func CreateDenoiseState() (denoise.Token, error) {
	return denoisers.Create()
}

// DestroyDenoiseState releases the denoiser behind tok.
func DestroyDenoiseState(tok denoise.Token) error {
	return denoisers.Destroy(tok)
}

// Denoise runs one 480-sample frame of 48 kHz audio, in int16 range,
// through the denoiser behind tok. The frame is modified in place and
// returned. Calls on one handle must not overlap.
func Denoise(tok denoise.Token, frame []float32) ([]float32, error) {
	out, err := denoisers.Denoise(tok, frame)
	if err != nil {
		return nil, fmt.Errorf("denoise handle %d: %w", tok, err)
	}
	observe.DefaultMetrics().DenoiseFrames.Add(context.Background(), 1)
	return out, nil
}
