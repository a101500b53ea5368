// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Resampler converts src to another sample rate with Catmull-Rom cubic
// interpolation. Channel count is preserved. When downsampling, every
// input frame first goes through a one-pole low-pass filter.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// hist holds frames t-1, t0, t+1, t+2 around the output position.
	// real marks the ones read from src rather than padded at the edges.
	hist [4][]float32
	real [4]bool
	pos  float64 // fractional position between hist[1] and hist[2]

	frame   []float32
	srcDone bool
	primed  bool
	done    bool

	lowpass bool
	warm    bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, channels),
		lowpass:  step > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// next reads one frame from src into r.frame. ok is false once src is
// exhausted.
func (r *Resampler) next() (ok bool, err error) {
	if r.srcDone {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err == io.EOF {
		r.srcDone = true
	} else if err != nil {
		return false, fmt.Errorf("%w", err)
	}

	if n == 0 {
		if !r.srcDone {
			// Nothing and no EOF: treat as the end of a short source.
			r.srcDone = true
		}
		return false, nil
	}

	clear(r.frame[n:])
	if r.lowpass {
		if !r.warm {
			// Start the filter at the first frame to avoid a fade-in.
			copy(r.state, r.frame)
			r.warm = true
		}
		for c, x := range r.frame {
			r.state[c] = r.alpha*x + (1-r.alpha)*r.state[c]
			r.frame[c] = r.state[c]
		}
	}
	return true, nil
}

// prime fills the history with the first frames of src.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.next()
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return io.EOF
	}

	copy(r.hist[0], r.frame)
	copy(r.hist[1], r.frame)
	r.real[1] = true

	for i := 2; i < 4; i++ {
		ok, err := r.next()
		if err != nil {
			return err
		}
		if ok {
			copy(r.hist[i], r.frame)
		} else {
			copy(r.hist[i], r.hist[i-1])
		}
		r.real[i] = ok
	}
	return nil
}

// advance shifts the history one frame forward.
func (r *Resampler) advance() error {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	copy(r.real[:], r.real[1:])
	r.hist[3] = first

	ok, err := r.next()
	if err != nil {
		return err
	}
	if ok {
		copy(r.hist[3], r.frame)
	} else {
		copy(r.hist[3], r.hist[2])
	}
	r.real[3] = ok

	if !r.real[1] {
		r.done = true
	}
	return nil
}

// ReadSamples produces samples at the target rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames && !r.done {
		for r.pos >= 1.0 && !r.done {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.done {
			break
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = cubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	if written == 0 && r.done {
		return 0, io.EOF
	}
	return written * r.channels, nil
}
