// SPDX-License-Identifier: EPL-2.0

package denoise

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	// FrameSize is the fixed RNNoise frame length in samples.
	FrameSize = 480
	// SampleRate is the rate RNNoise models are trained for.
	SampleRate = 48000
)

// Frame is one RNNoise frame.
type Frame [FrameSize]float32

// FrameOf returns a *Frame sharing memory with samples.
// It fails with ErrFrameLength unless len(samples) == FrameSize.
func FrameOf(samples []float32) (*Frame, error) {
	if len(samples) != FrameSize {
		return nil, fmt.Errorf("%w: got %d", ErrFrameLength, len(samples))
	}
	return (*Frame)(samples), nil
}

// Model is one live denoiser instance of a backend.
type Model interface {
	// ProcessFrame denoises in into out (they may alias) and returns the
	// voice activity probability.
	ProcessFrame(out, in []float32) float32
	Destroy()
}

// Backend creates models.
type Backend interface {
	Name() string
	FrameSize() int
	Create() (Model, error)
}

// State is one denoiser session. Calls are serialised, so a Close that
// races a Denoise leaves the other side with ErrClosed.
type State struct {
	model   Model
	backend string
	vad     float32
	frames  int
	closed  bool

	mtx *sync.Mutex
}

// NewState creates a model on b.
func NewState(b Backend) (*State, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: nil backend", ErrBackend)
	}

	if n := b.FrameSize(); n != FrameSize {
		return nil, fmt.Errorf("%w: %s uses %d-sample frames", ErrFrameLength, b.Name(), n)
	}

	m, err := b.Create()
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", ErrBackend, b.Name(), err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: %s returned no model", ErrBackend, b.Name())
	}

	logrus.WithFields(logrus.Fields{
		"function": "denoise.NewState",
		"backend":  b.Name(),
	}).Debug("Created denoiser state")

	return &State{model: m, backend: b.Name(), mtx: &sync.Mutex{}}, nil
}

// Denoise suppresses noise in f in place and returns f.
func (s *State) Denoise(f *Frame) (*Frame, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if f == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrFrameLength)
	}

	s.vad = s.model.ProcessFrame(f[:], f[:])
	s.frames++
	return f, nil
}

// VoiceProbability is the voice activity estimate of the last frame.
func (s *State) VoiceProbability() float32 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.vad
}

// Frames is the number of frames processed so far.
func (s *State) Frames() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.frames
}

// Closed reports whether Close was called.
func (s *State) Closed() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.closed
}

// Close destroys the model. Later calls are no-ops.
func (s *State) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.model.Destroy()
	s.model = nil

	logrus.WithFields(logrus.Fields{
		"function": "denoise.Close",
		"backend":  s.backend,
		"frames":   s.frames,
	}).Debug("Destroyed denoiser state")
	return nil
}
