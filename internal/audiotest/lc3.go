// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"sync"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
)

// ErrInjected is returned by the fake coders at the configured frame.
var ErrInjected = errors.New("audiotest: injected frame failure")

// LC3 is a codec.Backend that behaves like liblc3 in shape only.
//
// Each coder keeps a frame counter in its state memory, so a fresh handle
// starts from zero. The encoder writes the counter's low byte followed by
// as much of the PCM as fits; the decoder fills the PCM frame by repeating
// the encoded bytes. Silence therefore round-trips to silence apart from
// the counter byte.
type LC3 struct {
	// FailAlloc makes every Alloc fail.
	FailAlloc bool
	// FailEncodeAt and FailDecodeAt make every coder fail on its n-th
	// frame (zero based). Negative disables. Read on each frame.
	FailEncodeAt int
	FailDecodeAt int
	// PartialDecode makes decoders write only the first half of each PCM
	// frame and leave the rest untouched.
	PartialDecode bool

	mtx    sync.Mutex
	live   int
	allocs int
	frees  int
	setups int
}

func NewLC3() *LC3 {
	return &LC3{FailEncodeAt: -1, FailDecodeAt: -1}
}

// Live is the number of regions allocated and not yet freed.
func (b *LC3) Live() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.live
}

// Allocs is the total number of successful Alloc calls.
func (b *LC3) Allocs() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.allocs
}

// Frees is the total number of Free calls that released a region.
func (b *LC3) Frees() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.frees
}

// Setups counts successful SetupEncoder and SetupDecoder calls.
func (b *LC3) Setups() int {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.setups
}

func (b *LC3) Name() string { return "fake-lc3" }

func (b *LC3) FrameSamples(frameDurationUs, sampleRateHz int) int {
	return lc3.FrameSamples(frameDurationUs, sampleRateHz)
}

func (b *LC3) EncoderSize(frameDurationUs, sampleRateHz int) int {
	return b.stateSize(frameDurationUs, sampleRateHz)
}

func (b *LC3) DecoderSize(frameDurationUs, sampleRateHz int) int {
	return b.stateSize(frameDurationUs, sampleRateHz)
}

func (b *LC3) stateSize(frameDurationUs, sampleRateHz int) int {
	ns := b.FrameSamples(frameDurationUs, sampleRateHz)
	if ns <= 0 {
		return 0
	}
	return 8 + ns
}

func (b *LC3) Alloc(size int) (codec.Memory, error) {
	if b.FailAlloc {
		return nil, codec.ErrAllocation
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	b.live++
	b.allocs++
	return &memory{owner: b, buf: make([]byte, size)}, nil
}

func (b *LC3) SetupEncoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameEncoder, error) {
	m, err := b.bind(mem)
	if err != nil {
		return nil, err
	}
	return &encoder{mem: m}, nil
}

func (b *LC3) SetupDecoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameDecoder, error) {
	m, err := b.bind(mem)
	if err != nil {
		return nil, err
	}
	return &decoder{mem: m}, nil
}

func (b *LC3) bind(mem codec.Memory) (*memory, error) {
	m, ok := mem.(*memory)
	if !ok || m.owner != b {
		return nil, codec.ErrInvalidHandle
	}

	b.mtx.Lock()
	b.setups++
	b.mtx.Unlock()
	return m, nil
}

type memory struct {
	owner *LC3
	buf   []byte
	freed bool
}

func (m *memory) Len() int { return len(m.buf) }

func (m *memory) Free() {
	m.owner.mtx.Lock()
	defer m.owner.mtx.Unlock()

	if m.freed {
		return
	}
	m.freed = true
	m.buf = nil
	m.owner.live--
	m.owner.frees++
}

// next returns the frame counter stored in the region and bumps it.
func (m *memory) next() uint64 {
	n := binary.LittleEndian.Uint64(m.buf)
	binary.LittleEndian.PutUint64(m.buf, n+1)
	return n
}

type encoder struct {
	mem *memory
}

func (e *encoder) EncodeFrame(pcm, out []byte) error {
	if e.mem.freed {
		return codec.ErrClosed
	}

	n := e.mem.next()
	if at := e.mem.owner.FailEncodeAt; at >= 0 && n == uint64(at) {
		return ErrInjected
	}

	out[0] = byte(n)
	copy(out[1:], pcm)
	return nil
}

type decoder struct {
	mem *memory
}

func (d *decoder) DecodeFrame(in, pcm []byte) error {
	if d.mem.freed {
		return codec.ErrClosed
	}

	n := d.mem.next()
	if at := d.mem.owner.FailDecodeAt; at >= 0 && n == uint64(at) {
		return ErrInjected
	}

	w := len(pcm)
	if d.mem.owner.PartialDecode {
		w /= 2
	}
	for i := range pcm[:w] {
		pcm[i] = in[i%len(in)]
	}
	return nil
}
