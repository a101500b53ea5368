// SPDX-License-Identifier: EPL-2.0

package denoise

import "errors"

var (
	ErrFrameLength     = errors.New("denoise: frame length must be 480 samples")
	ErrClosed          = errors.New("denoise: state is closed")
	ErrUnknownToken    = errors.New("denoise: unknown state token")
	ErrBackend         = errors.New("denoise: backend failure")
	ErrUnsupportedRate = errors.New("denoise: source must be mono 48 kHz")
)
