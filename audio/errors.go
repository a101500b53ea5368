// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrOddPCMLength   = errors.New("pcm16 data has an odd number of bytes")
)

// FormatError names a format no decoder is registered for.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownFormat, e.Format)
}

func (e *FormatError) Unwrap() error { return ErrUnknownFormat }
