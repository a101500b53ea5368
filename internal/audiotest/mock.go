// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test doubles shared across packages: generated
// audio sources, a fake LC3 backend and a fake denoiser.
package audiotest

import (
	"io"
	"math"
)

// Waveform returns the value of frame i on channel ch.
type Waveform func(i, ch int) float32

// Source generates frames frames of audio from a Waveform. It satisfies
// audio.Source.
type Source struct {
	rate     int
	channels int
	frames   int
	pos      int
	wave     Waveform
	closed   bool

	// Err, when set, is returned by ReadSamples once FailAfter frames
	// have been produced.
	Err       error
	FailAfter int
}

func NewSource(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, channels: channels, frames: frames, wave: wave}
}

func NewSilence(rate, channels, frames int) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

func NewConstant(rate, channels, frames int, v float32) *Source {
	return NewSource(rate, channels, frames, func(int, int) float32 { return v })
}

// NewSine generates a full-scale sine of freq Hz on every channel.
func NewSine(rate, channels, frames int, freq float64) *Source {
	return NewSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.Err != nil && s.pos >= s.FailAfter {
		return 0, s.Err
	}
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.Err != nil {
		n = min(n, s.FailAfter-s.pos)
	}

	for f := range n {
		for ch := range s.channels {
			dst[f*s.channels+ch] = s.wave(s.pos+f, ch)
		}
	}
	s.pos += n
	return n * s.channels, nil
}
