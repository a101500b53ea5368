// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/lc3bridge/audio"
)

// go-mp3 always emits interleaved 16-bit stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

// pcmReader is the part of gomp3.Decoder the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	tail []byte // partial frame carried over between reads
	done bool
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n := copy(s.buf, s.tail)
	s.tail = s.tail[:0]

	// Keep reading until a whole frame is available so a zero count only
	// ever means end of stream.
	for n < frameBytes && !s.done {
		m, err := s.dec.Read(s.buf[n:])
		n += m
		if errors.Is(err, io.EOF) {
			s.done = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("mp3 read: %w", err)
		}
		if m == 0 {
			s.done = true
		}
	}

	if rem := n % frameBytes; rem != 0 {
		s.tail = append(s.tail, s.buf[n-rem:n]...)
		n -= rem
	}

	samples, convErr := audio.Int16s(s.buf[:n])
	if convErr != nil {
		return 0, convErr
	}
	for i, v := range samples {
		dst[i] = audio.Int16ToFloat32(v)
	}

	if len(samples) == 0 && s.done {
		return 0, io.EOF
	}
	return len(samples), nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
