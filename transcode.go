// SPDX-License-Identifier: EPL-2.0

package lc3bridge

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ik5/lc3bridge/audio"
	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/denoise"
)

// TranscodeOption configures EncodeSource.
type TranscodeOption func(*transcodeOptions)

type transcodeOptions struct {
	denoiser   denoise.Backend
	bufferSize int
}

// WithDenoise runs the audio through a denoiser on b, at 48 kHz, before it
// is resampled to the codec rate.
func WithDenoise(b denoise.Backend) TranscodeOption {
	return func(o *transcodeOptions) { o.denoiser = b }
}

// WithBufferSize sets the read size, in samples, used to drain the source.
func WithBufferSize(n int) TranscodeOption {
	return func(o *transcodeOptions) { o.bufferSize = n }
}

// EncodeSource encodes all of src with c. The audio is mixed to mono,
// optionally denoised, resampled to the converter rate and converted to
// 16-bit PCM; the last PCM frame is padded with silence so no input is
// lost. EncodeSource closes src.
func EncodeSource(c *Converter, src audio.Source, opts ...TranscodeOption) ([]byte, error) {
	o := transcodeOptions{bufferSize: 4096}
	for _, opt := range opts {
		opt(&o)
	}

	var s audio.Source = src
	if s.Channels() != 1 {
		s = audio.NewMonoMixer(s)
	}

	var ds *denoise.Source
	if o.denoiser != nil {
		if s.SampleRate() != denoise.SampleRate {
			s = audio.NewResampler(s, denoise.SampleRate)
		}
		var err error
		if ds, err = denoise.NewSource(s, o.denoiser); err != nil {
			_ = s.Close()
			return nil, err
		}
		s = ds
	}

	g := c.Geometry()
	if s.SampleRate() != g.SampleRateHz {
		s = audio.NewResampler(s, g.SampleRateHz)
	}
	defer s.Close()

	samples, err := audio.ReadAll(s, o.bufferSize)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	if ds != nil {
		c.metrics.DenoiseFrames.Add(context.Background(), int64(ds.State().Frames()))
	}

	pcm := audio.PCM16Bytes(samples)
	if rem := len(pcm) % g.BytesPerFrame; rem != 0 {
		pcm = append(pcm, make([]byte, g.BytesPerFrame-rem)...)
	}

	logrus.WithFields(logrus.Fields{
		"function": "EncodeSource",
		"samples":  len(samples),
		"frames":   codec.FrameCount(len(pcm), g.BytesPerFrame),
		"denoise":  ds != nil,
	}).Debug("Encoding source")

	return c.Encode(pcm)
}

// DecodeToSource decodes lc3 with c and serves the PCM as a mono Source at
// the converter rate.
func DecodeToSource(c *Converter, lc3 []byte) (audio.Source, error) {
	pcm, err := c.Decode(lc3)
	if err != nil {
		return nil, err
	}
	return audio.NewPCM16Source(pcm, c.Geometry().SampleRateHz)
}
