// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/lc3bridge/audio"
)

type stubDecoder struct{ name string }

func (stubDecoder) Decode(io.Reader) (audio.Source, error) { return nil, nil }

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register("WAV", stubDecoder{"wav"})
	reg.Register("mp3", stubDecoder{"mp3"})

	d, ok := reg.Get("wav")
	require.True(t, ok)
	assert.Equal(t, stubDecoder{"wav"}, d)

	d, err := reg.ForPath("/tmp/Speech.MP3")
	require.NoError(t, err)
	assert.Equal(t, stubDecoder{"mp3"}, d)

	_, err = reg.ForPath("speech.flac")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)
	var fe *audio.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "flac", fe.Format)

	_, err = reg.ForPath("noextension")
	assert.ErrorIs(t, err, audio.ErrUnknownFormat)

	assert.Equal(t, []string{"mp3", "wav"}, reg.Formats())
}

// pcmReader serves data through the go-audio PCMBuffer contract.
type pcmReader struct {
	data []int
	err  error
}

func (r *pcmReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n := copy(buf.Data, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestIntSource(t *testing.T) {
	t.Parallel()

	dec := &pcmReader{data: []int{16384, -16384, 32767, -32768, 0}}
	src := audio.NewIntSource(dec, &goaudio.Format{NumChannels: 1, SampleRate: 22050}, 16)
	assert.Equal(t, 22050, src.SampleRate())
	assert.Equal(t, 1, src.Channels())

	got, err := audio.ReadAll(src, 2)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.EqualValues(t, 0.5, got[0])
	assert.EqualValues(t, -0.5, got[1])
	assert.EqualValues(t, -1, got[3])

	n, err := src.ReadSamples(make([]float32, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestIntSource_BitDepths(t *testing.T) {
	t.Parallel()

	for depth, full := range map[int]int{8: 64, 24: 4194304, 32: 1073741824} {
		src := audio.NewIntSource(&pcmReader{data: []int{full}}, &goaudio.Format{NumChannels: 1, SampleRate: 8000}, depth)
		got, err := audio.ReadAll(src, 4)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.EqualValues(t, 0.5, got[0], "depth %d", depth)
	}
}

func TestIntSource_Error(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")

	src := audio.NewIntSource(&pcmReader{err: boom}, &goaudio.Format{NumChannels: 1, SampleRate: 8000}, 16)
	_, err := src.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, boom)
}

func TestSeekable(t *testing.T) {
	t.Parallel()

	br := bytes.NewReader([]byte("abc"))
	rs, err := audio.Seekable(br)
	require.NoError(t, err)
	assert.Same(t, br, rs)

	rs, err = audio.Seekable(io.MultiReader(strings.NewReader("ab"), strings.NewReader("cd")))
	require.NoError(t, err)
	_, err = rs.Seek(2, io.SeekStart)
	require.NoError(t, err)
	rest, err := io.ReadAll(rs)
	require.NoError(t, err)
	assert.Equal(t, "cd", string(rest))
}
