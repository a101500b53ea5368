// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Bounds of one encoded LC3 frame in bytes.
const (
	MinEncodedFrameBytes = 20
	MaxEncodedFrameBytes = 400
)

// MaxStreamBytes caps the output of a single stream call.
const MaxStreamBytes = 1 << 30

// FrameCount is the number of whole frames of frameSize bytes in inputLen.
// Remainder bytes are not counted.
func FrameCount(inputLen, frameSize int) int {
	if frameSize <= 0 || inputLen <= 0 {
		return 0
	}
	return inputLen / frameSize
}

// Remainder is the number of trailing bytes a stream call drops.
func Remainder(inputLen, frameSize int) int {
	if frameSize <= 0 || inputLen <= 0 {
		return 0
	}
	return inputLen % frameSize
}

// DecodeStream decodes every whole inputFrameSize-byte frame of in and
// returns the concatenated PCM. outputFrameSize must equal the decoder's
// BytesPerFrame. Trailing bytes that do not fill a frame are dropped.
func DecodeStream(in []byte, dec *Decoder, inputFrameSize, outputFrameSize int) ([]byte, error) {
	if dec == nil || dec.h == nil {
		return nil, ErrInvalidHandle
	}

	if err := checkEncodedSize(inputFrameSize); err != nil {
		return nil, err
	}

	if err := checkPCMSize(outputFrameSize, dec.h.geometry); err != nil {
		return nil, err
	}

	if dec.Closed() {
		return nil, ErrClosed
	}

	frames := FrameCount(len(in), inputFrameSize)
	out, err := allocOutput(frames, outputFrameSize)
	if err != nil {
		return nil, err
	}

	logStream("decode", len(in), frames, inputFrameSize, outputFrameSize)

	// scratch is reused for every frame and cleared after each copy.
	scratch := make([]byte, outputFrameSize)

	for i := range frames {
		off := i * inputFrameSize
		frame := in[off : off+inputFrameSize]

		if err := dec.DecodeFrame(frame, scratch); err != nil {
			return nil, frameFailure("decode", i, err)
		}

		copy(out[i*outputFrameSize:(i+1)*outputFrameSize], scratch)
		clear(scratch)
	}

	return out, nil
}

// EncodeStream encodes every whole inputFrameSize-byte PCM frame of in and
// returns the concatenated outputFrameSize-byte encoded frames.
// inputFrameSize must equal the encoder's BytesPerFrame.
func EncodeStream(in []byte, enc *Encoder, inputFrameSize, outputFrameSize int) ([]byte, error) {
	if enc == nil || enc.h == nil {
		return nil, ErrInvalidHandle
	}

	if err := checkPCMSize(inputFrameSize, enc.h.geometry); err != nil {
		return nil, err
	}

	if err := checkEncodedSize(outputFrameSize); err != nil {
		return nil, err
	}

	if enc.Closed() {
		return nil, ErrClosed
	}

	frames := FrameCount(len(in), inputFrameSize)
	out, err := allocOutput(frames, outputFrameSize)
	if err != nil {
		return nil, err
	}

	logStream("encode", len(in), frames, inputFrameSize, outputFrameSize)

	for i := range frames {
		off := i * inputFrameSize
		frame := in[off : off+inputFrameSize]

		if err := enc.EncodeFrame(frame, out[i*outputFrameSize:(i+1)*outputFrameSize]); err != nil {
			return nil, frameFailure("encode", i, err)
		}
	}

	return out, nil
}

func checkEncodedSize(n int) error {
	if n < MinEncodedFrameBytes || n > MaxEncodedFrameBytes {
		return fmt.Errorf("%w: encoded frame %d bytes, want %d..%d",
			ErrInvalidFrameSize, n, MinEncodedFrameBytes, MaxEncodedFrameBytes)
	}
	return nil
}

func checkPCMSize(n int, g Geometry) error {
	if n <= 0 {
		return fmt.Errorf("%w: pcm frame %d bytes", ErrInvalidFrameSize, n)
	}
	if n != g.BytesPerFrame {
		return fmt.Errorf("%w: pcm frame %d bytes, handle has %s",
			ErrGeometryMismatch, n, g)
	}
	return nil
}

func allocOutput(frames, frameSize int) ([]byte, error) {
	if frames > 0 && frameSize > MaxStreamBytes/frames {
		return nil, fmt.Errorf("%w: %d frames of %d bytes exceeds %d",
			ErrAllocation, frames, frameSize, MaxStreamBytes)
	}
	return make([]byte, frames*frameSize), nil
}

func frameFailure(op string, index int, err error) error {
	logrus.WithFields(logrus.Fields{
		"function": "codec." + op + "Stream",
		"frame":    index,
		"error":    err.Error(),
	}).Error("Frame processing failed, aborting stream")

	return &FrameError{Op: op, Index: index, Err: err}
}

func logStream(op string, inputLen, frames, inSize, outSize int) {
	fields := logrus.Fields{
		"function":    "codec." + op + "Stream",
		"input_size":  inputLen,
		"frames":      frames,
		"output_size": frames * outSize,
	}
	if dropped := Remainder(inputLen, inSize); dropped > 0 {
		fields["dropped_bytes"] = dropped
	}
	logrus.WithFields(fields).Debug("Processing stream")
}
