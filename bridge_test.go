// SPDX-License-Identifier: EPL-2.0

package lc3bridge_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/lc3bridge"
	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
	"github.com/ik5/lc3bridge/denoise"
	"github.com/ik5/lc3bridge/internal/audiotest"
)

func TestDecodeWith_TwoFrames(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()

	in := append(bytes.Repeat([]byte{0xAA}, 20), bytes.Repeat([]byte{0x55}, 20)...)
	out, err := lc3bridge.DecodeWith(b, in)
	require.NoError(t, err)
	require.Len(t, out, 640)

	assert.Equal(t, bytes.Repeat([]byte{0xAA}, 320), out[:320])
	assert.Equal(t, bytes.Repeat([]byte{0x55}, 320), out[320:])
	assert.Zero(t, b.Live())
	assert.Equal(t, 1, b.Setups())
}

func TestDecodeWith_DropsTrailingBytes(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()

	out, err := lc3bridge.DecodeWith(b, make([]byte, 25))
	require.NoError(t, err)
	assert.Len(t, out, 320)

	out, err = lc3bridge.DecodeWith(b, make([]byte, 19))
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, b.Live())
}

func TestEncodeWith_OneFrame(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()

	out, err := lc3bridge.EncodeWith(b, make([]byte, 320))
	require.NoError(t, err)
	assert.Len(t, out, 20)

	out, err = lc3bridge.EncodeWith(b, make([]byte, 3*320+100))
	require.NoError(t, err)
	require.Len(t, out, 60)
	assert.Equal(t, []byte{0, 1, 2}, []byte{out[0], out[20], out[40]})
	assert.Zero(t, b.Live())
}

func TestFlatCalls_ShareNoState(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()

	for range 3 {
		out, err := lc3bridge.EncodeWith(b, make([]byte, 320))
		require.NoError(t, err)
		assert.Zero(t, out[0], "every call starts a fresh encoder")
	}
	assert.Equal(t, 3, b.Allocs())
	assert.Equal(t, 3, b.Frees())
}

func TestFlatCalls_FrameFailure(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	b.FailDecodeAt = 1

	out, err := lc3bridge.DecodeWith(b, make([]byte, 60))
	assert.Nil(t, out)
	require.ErrorIs(t, err, codec.ErrCodec)
	assert.ErrorIs(t, err, audiotest.ErrInjected)

	var fe *codec.FrameError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, fe.Index)
	assert.Equal(t, "decode", fe.Op)
	assert.Zero(t, b.Live())

	b.FailEncodeAt = 0
	out, err = lc3bridge.EncodeWith(b, make([]byte, 320))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, codec.ErrCodec)
	assert.Zero(t, b.Live())
}

func TestFlatCalls_AllocationFailure(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	b.FailAlloc = true

	_, err := lc3bridge.DecodeWith(b, make([]byte, 20))
	assert.ErrorIs(t, err, codec.ErrAllocation)
	_, err = lc3bridge.EncodeWith(b, make([]byte, 320))
	assert.ErrorIs(t, err, codec.ErrAllocation)
}

func TestFlatCalls_DefaultBackend(t *testing.T) {
	t.Parallel()
	if lc3.Available() {
		t.Skip("built with liblc3")
	}

	_, err := lc3bridge.Decode(make([]byte, 20))
	assert.ErrorIs(t, err, codec.ErrUnavailable)
	_, err = lc3bridge.Encode(make([]byte, 320))
	assert.ErrorIs(t, err, codec.ErrUnavailable)
}

func TestDenoise_Lifecycle(t *testing.T) {
	t.Parallel()

	tok, err := lc3bridge.CreateDenoiseState()
	require.NoError(t, err)

	frame := make([]float32, denoise.FrameSize)
	for range 100 {
		out, err := lc3bridge.Denoise(tok, frame)
		require.NoError(t, err)
		require.Len(t, out, denoise.FrameSize)
		if denoise.Default().Name() == "passthrough" {
			for _, x := range out {
				require.Zero(t, x)
			}
		}
	}

	require.NoError(t, lc3bridge.DestroyDenoiseState(tok))

	_, err = lc3bridge.Denoise(tok, frame)
	assert.ErrorIs(t, err, denoise.ErrUnknownToken)
	assert.ErrorIs(t, lc3bridge.DestroyDenoiseState(tok), denoise.ErrUnknownToken)
}

func TestDenoise_WrongLength(t *testing.T) {
	t.Parallel()

	tok, err := lc3bridge.CreateDenoiseState()
	require.NoError(t, err)
	defer func() { require.NoError(t, lc3bridge.DestroyDenoiseState(tok)) }()

	out, err := lc3bridge.Denoise(tok, make([]float32, 479))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, denoise.ErrFrameLength)

	_, err = lc3bridge.Denoise(tok, make([]float32, denoise.FrameSize))
	assert.NoError(t, err)
}
