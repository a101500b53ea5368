// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/lc3bridge/audio"
	"github.com/ik5/lc3bridge/formats/wav"
)

func writeTemp(t *testing.T, rate int, samples []int16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.WriteWAV16(f, rate, samples))
	require.NoError(t, f.Close())
	return path
}

func TestWriteThenDecode(t *testing.T) {
	t.Parallel()
	samples := []int16{0, 16384, -16384, 32767, -32768, 100, -100}
	path := writeTemp(t, 16000, samples)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	src, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 16000, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	got, err := audio.ReadAll(src, 3)
	require.NoError(t, err)
	require.Len(t, got, len(samples))
	for i, s := range samples {
		assert.EqualValues(t, audio.Int16ToFloat32(s), got[i], "sample %d", i)
	}
}

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()
	path := writeTemp(t, 8000, []int16{1, 2, 3, 4})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(data), 44+8)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
	assert.Equal(t, []byte{4, 0}, data[len(data)-2:])
}

func TestWriteWAV16_InvalidRate(t *testing.T) {
	t.Parallel()
	f, err := os.Create(filepath.Join(t.TempDir(), "bad.wav"))
	require.NoError(t, err)
	defer f.Close()

	assert.ErrorIs(t, wav.WriteWAV16(f, 0, nil), wav.ErrUnsupportedWavLayout)
}

func TestDecode_NonSeekableReader(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile(writeTemp(t, 48000, []int16{1000, 2000, 3000}))
	require.NoError(t, err)

	src, err := wav.Decoder{}.Decode(io.MultiReader(bytes.NewReader(data)))
	require.NoError(t, err)

	got, err := audio.ReadAll(src, 16)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDecode_NotWav(t *testing.T) {
	t.Parallel()

	_, err := wav.Decoder{}.Decode(bytes.NewReader([]byte("definitely not a riff file, just text")))
	assert.ErrorIs(t, err, wav.ErrNotWavFile)
}

func TestDecode_Rejects8Bit(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "8bit.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	enc := gowav.NewEncoder(f, 8000, 8, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: 8000},
		Data:           []int{10, 20, 30, 40},
		SourceBitDepth: 8,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = wav.Decoder{}.Decode(r)
	assert.ErrorIs(t, err, wav.ErrOnlyPCM16bitSupported)
}

func TestDecode_Stereo(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "stereo.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	enc := gowav.NewEncoder(f, 44100, 16, 2, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{16384, -16384, 16384, -16384},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	r, err := os.Open(path)
	require.NoError(t, err)
	defer r.Close()

	src, err := wav.Decoder{}.Decode(r)
	require.NoError(t, err)
	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, 44100, src.SampleRate())

	mono, err := audio.ReadAll(audio.NewMonoMixer(src), 8)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0}, mono)
}
