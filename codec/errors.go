// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	ErrAllocation       = errors.New("codec: allocation failed")
	ErrInvalidGeometry  = errors.New("codec: invalid frame geometry")
	ErrInvalidFrameSize = errors.New("codec: invalid frame size")
	ErrGeometryMismatch = errors.New("codec: frame size does not match handle geometry")
	ErrInvalidHandle    = errors.New("codec: invalid state handle")
	ErrClosed           = errors.New("codec: state handle is closed")
	ErrCodec            = errors.New("codec: frame processing failed")
	ErrUnavailable      = errors.New("codec: backend unavailable")
)

// FrameError reports the frame at which a stream call stopped.
type FrameError struct {
	Op    string // "encode" or "decode"
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("codec: %s frame %d: %v", e.Op, e.Index, e.Err)
}

// Unwrap lets errors.Is match both ErrCodec and the backend error.
func (e *FrameError) Unwrap() []error {
	return []error{ErrCodec, e.Err}
}
