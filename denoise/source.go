// SPDX-License-Identifier: EPL-2.0

package denoise

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/lc3bridge/audio"
)

// int16Scale maps [-1,1] floats to the range RNNoise is trained on.
const int16Scale = 32768.0

// Source streams a mono 48 kHz audio.Source through one denoiser State.
type Source struct {
	src   audio.Source
	state *State

	frame   Frame
	pending []float32
	done    bool
}

// NewSource wraps src with a fresh State created on b. Close releases both.
func NewSource(src audio.Source, b Backend) (*Source, error) {
	if src.Channels() != 1 || src.SampleRate() != SampleRate {
		return nil, fmt.Errorf("%w: got %d channel(s) at %d Hz",
			ErrUnsupportedRate, src.Channels(), src.SampleRate())
	}

	st, err := NewState(b)
	if err != nil {
		return nil, err
	}
	return &Source{src: src, state: st}, nil
}

func (s *Source) SampleRate() int { return SampleRate }
func (s *Source) Channels() int   { return 1 }
func (s *Source) BufSize() int    { return FrameSize }

// State exposes the underlying denoiser, e.g. for VoiceProbability.
func (s *Source) State() *State { return s.state }

func (s *Source) Close() error {
	return errors.Join(s.state.Close(), s.src.Close())
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.done {
			return 0, io.EOF
		}
		if err := s.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// fill denoises the next frame into s.pending. A short final frame is
// zero padded; only its real samples are queued.
func (s *Source) fill() error {
	filled := 0
	for filled < FrameSize {
		n, err := s.src.ReadSamples(s.frame[filled:])
		filled += n
		if err == io.EOF || (err == nil && n == 0) {
			s.done = true
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	if filled == 0 {
		return nil
	}

	clear(s.frame[filled:])
	for i := range s.frame {
		s.frame[i] *= int16Scale
	}

	if _, err := s.state.Denoise(&s.frame); err != nil {
		return err
	}

	for i := range s.frame {
		s.frame[i] /= int16Scale
	}
	s.pending = s.frame[:filled]
	return nil
}
