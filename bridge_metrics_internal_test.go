// SPDX-License-Identifier: EPL-2.0

package lc3bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/ik5/lc3bridge/codec"
	"github.com/ik5/lc3bridge/internal/audiotest"
	"github.com/ik5/lc3bridge/internal/observe"
)

const activeHandles = "lc3bridge.active_handles"

// hookedLC3 runs onFrame before every frame the fake coders process.
type hookedLC3 struct {
	*audiotest.LC3
	onFrame func()
}

func (b *hookedLC3) SetupEncoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameEncoder, error) {
	enc, err := b.LC3.SetupEncoder(g, cfg, mem)
	if err != nil {
		return nil, err
	}
	return hookedEncoder{enc, b.onFrame}, nil
}

func (b *hookedLC3) SetupDecoder(g codec.Geometry, cfg codec.ChannelConfig, mem codec.Memory) (codec.FrameDecoder, error) {
	dec, err := b.LC3.SetupDecoder(g, cfg, mem)
	if err != nil {
		return nil, err
	}
	return hookedDecoder{dec, b.onFrame}, nil
}

type hookedEncoder struct {
	codec.FrameEncoder
	hook func()
}

func (e hookedEncoder) EncodeFrame(pcm, out []byte) error {
	e.hook()
	return e.FrameEncoder.EncodeFrame(pcm, out)
}

type hookedDecoder struct {
	codec.FrameDecoder
	hook func()
}

func (d hookedDecoder) DecodeFrame(in, pcm []byte) error {
	d.hook()
	return d.FrameDecoder.DecodeFrame(in, pcm)
}

func newTestMetrics(t *testing.T) (*observe.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	mp, reader := audiotest.NewMeterProvider(t)
	m, err := observe.NewMetrics(mp)
	require.NoError(t, err)
	return m, reader
}

func TestFlatCallsCountActiveHandles(t *testing.T) {
	t.Parallel()
	m, reader := newTestMetrics(t)

	var during []int64
	b := &hookedLC3{LC3: audiotest.NewLC3()}
	b.onFrame = func() { during = append(during, audiotest.Int64Total(t, reader, activeHandles)) }

	_, err := decodeWith(m, b, make([]byte, 40))
	require.NoError(t, err)
	_, err = encodeWith(m, b, make([]byte, 320))
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1, 1}, during)
	assert.Zero(t, audiotest.Int64Total(t, reader, activeHandles))
	assert.EqualValues(t, 2, audiotest.Int64Total(t, reader, "lc3bridge.frames.decoded"))
}

func TestFlatCallsReleaseHandleMetricOnFailure(t *testing.T) {
	t.Parallel()
	m, reader := newTestMetrics(t)

	b := audiotest.NewLC3()
	b.FailDecodeAt = 0

	_, err := decodeWith(m, b, make([]byte, 20))
	require.ErrorIs(t, err, codec.ErrCodec)
	assert.Zero(t, audiotest.Int64Total(t, reader, activeHandles))
	assert.EqualValues(t, 1, audiotest.Int64Total(t, reader, "lc3bridge.frame.failures"))
}
