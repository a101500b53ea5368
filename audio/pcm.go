// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Float32ToInt16 clamps x to [-1,1] and scales it to int16.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 keeps +1.0 from overflowing.
	return int16(x * 32767.0)
}

// Int16ToFloat32 scales a 16-bit sample to [-1,1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}

// PCM16Bytes encodes samples as 16-bit little-endian PCM.
func PCM16Bytes(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, x := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(Float32ToInt16(x)))
	}
	return out
}

// Int16s decodes 16-bit little-endian PCM.
func Int16s(pcm []byte) ([]int16, error) {
	if len(pcm)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddPCMLength, len(pcm))
	}

	out := make([]int16, len(pcm)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(pcm[2*i:]))
	}
	return out, nil
}

// ReadAll drains src with reads of bufSize samples.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize < src.Channels() {
		bufSize = src.Channels()
	}
	// Keep reads frame aligned.
	bufSize -= bufSize % src.Channels()

	buf := make([]float32, bufSize)
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// A source that returns nothing without an error is finished.
			return out, nil
		}
	}
}

// cubicInterpolate is a Catmull-Rom spline between y1 (x=0) and y2 (x=1).
func cubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	return ((a0*x+a1)*x+a2)*x + y1
}
