// SPDX-License-Identifier: EPL-2.0

package codec_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/codec/lc3"
	"github.com/ik5/lc3bridge/internal/audiotest"
)

func geometry(t *testing.T, b codec.FrameSampler) codec.Geometry {
	t.Helper()
	g, err := codec.ComputeGeometry(b, 10000, 16000)
	require.NoError(t, err)
	return g
}

func TestEncoderLifecycle(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	enc, err := codec.NewEncoder(b, g, codec.Mono)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Live())
	assert.Equal(t, g, enc.Geometry())
	assert.False(t, enc.Closed())

	require.NoError(t, enc.Close())
	require.NoError(t, enc.Close())
	assert.True(t, enc.Closed())
	assert.Equal(t, 0, b.Live())
	assert.Equal(t, 1, b.Frees())

	err = enc.EncodeFrame(make([]byte, g.BytesPerFrame), make([]byte, 20))
	assert.ErrorIs(t, err, codec.ErrClosed)
}

func TestDecoderLifecycle(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	dec, err := codec.NewDecoder(b, g, codec.Mono)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Live())

	pcm := make([]byte, g.BytesPerFrame)
	require.NoError(t, dec.DecodeFrame(make([]byte, 20), pcm))

	require.NoError(t, dec.Close())
	assert.Equal(t, 0, b.Live())
	assert.ErrorIs(t, dec.DecodeFrame(make([]byte, 20), pcm), codec.ErrClosed)
}

func TestFrameSizeMustMatchGeometry(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	enc, err := codec.NewEncoder(b, g, codec.Mono)
	require.NoError(t, err)
	defer enc.Close()

	err = enc.EncodeFrame(make([]byte, g.BytesPerFrame-2), make([]byte, 20))
	assert.ErrorIs(t, err, codec.ErrGeometryMismatch)
}

func TestNewState_Failures(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	t.Run("nil backend", func(t *testing.T) {
		_, err := codec.NewEncoder(nil, g, codec.Mono)
		assert.ErrorIs(t, err, codec.ErrInvalidHandle)
	})

	t.Run("invalid geometry", func(t *testing.T) {
		_, err := codec.NewDecoder(b, codec.Geometry{}, codec.Mono)
		assert.ErrorIs(t, err, codec.ErrInvalidGeometry)
	})

	t.Run("stereo", func(t *testing.T) {
		_, err := codec.NewEncoder(b, g, codec.ChannelConfig{Channels: 2})
		assert.ErrorIs(t, err, codec.ErrInvalidGeometry)
	})

	t.Run("pcm rate differs from codec rate", func(t *testing.T) {
		cfg := codec.ChannelConfig{Channels: 1, PCMSampleRateHz: 48000}

		_, err := codec.NewDecoder(b, g, cfg)
		assert.ErrorIs(t, err, codec.ErrInvalidGeometry)
		_, err = codec.NewEncoder(b, g, cfg)
		assert.ErrorIs(t, err, codec.ErrInvalidGeometry)
		assert.Zero(t, b.Allocs())
	})

	t.Run("pcm rate equal to codec rate", func(t *testing.T) {
		dec, err := codec.NewDecoder(b, g, codec.ChannelConfig{Channels: 1, PCMSampleRateHz: g.SampleRateHz})
		require.NoError(t, err)
		require.NoError(t, dec.Close())
	})

	t.Run("allocation", func(t *testing.T) {
		failing := audiotest.NewLC3()
		failing.FailAlloc = true

		_, err := codec.NewEncoder(failing, g, codec.Mono)
		assert.ErrorIs(t, err, codec.ErrAllocation)
		assert.Equal(t, 0, failing.Live())
	})

	assert.Equal(t, 0, b.Live())
}

func TestUnavailableBackend(t *testing.T) {
	t.Parallel()
	if lc3.Available() {
		t.Skip("liblc3 is linked in")
	}

	b := lc3.New()
	g, err := codec.ComputeGeometry(b, 10000, 16000)
	require.NoError(t, err)
	assert.Equal(t, 320, g.BytesPerFrame)

	_, err = codec.NewDecoder(b, g, codec.Mono)
	assert.ErrorIs(t, err, codec.ErrUnavailable)
}

func TestWithEncoder_ReleasesOnError(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)
	boom := errors.New("boom")

	err := codec.WithEncoder(b, g, codec.Mono, func(enc *codec.Encoder) error {
		assert.Equal(t, 1, b.Live())
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, b.Live())
}

func TestWithDecoder_ReleasesOnPanic(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	assert.Panics(t, func() {
		_ = codec.WithDecoder(b, g, codec.Mono, func(*codec.Decoder) error {
			panic("decoder callback")
		})
	})
	assert.Equal(t, 0, b.Live())
}

func TestHandlesAreIndependent(t *testing.T) {
	t.Parallel()
	b := audiotest.NewLC3()
	g := geometry(t, b)

	first, err := codec.NewEncoder(b, g, codec.Mono)
	require.NoError(t, err)
	defer first.Close()

	pcm := make([]byte, g.BytesPerFrame)
	out := make([]byte, 20)
	require.NoError(t, first.EncodeFrame(pcm, out))
	require.NoError(t, first.EncodeFrame(pcm, out))
	assert.EqualValues(t, 1, out[0])

	second, err := codec.NewEncoder(b, g, codec.Mono)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.EncodeFrame(pcm, out))
	assert.EqualValues(t, 0, out[0], "a new handle starts with fresh state")
	assert.Equal(t, 2, b.Live())
}
