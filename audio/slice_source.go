// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// SliceSource serves samples already held in memory.
type SliceSource struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
}

// NewSliceSource wraps interleaved samples; the slice is not copied.
func NewSliceSource(samples []float32, sampleRate, channels int) *SliceSource {
	if channels <= 0 {
		channels = 1
	}
	return &SliceSource{
		samples:    samples,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// NewPCM16Source decodes 16-bit little-endian mono PCM into a Source.
func NewPCM16Source(pcm []byte, sampleRate int) (*SliceSource, error) {
	ints, err := Int16s(pcm)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, len(ints))
	for i, s := range ints {
		samples[i] = Int16ToFloat32(s)
	}
	return NewSliceSource(samples, sampleRate, 1), nil
}

func (s *SliceSource) SampleRate() int { return s.sampleRate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

// Len is the number of samples not yet read.
func (s *SliceSource) Len() int { return len(s.samples) - s.pos }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}
