// SPDX-License-Identifier: EPL-2.0

//go:build cgo && rnnoise

package denoise

/*
#cgo LDFLAGS: -lrnnoise -lm
#include <rnnoise.h>
*/
import "C"

import "unsafe"

// Default returns the RNNoise backend.
func Default() Backend { return RNNoise() }

// RNNoise returns the backend for librnnoise with its built-in model.
func RNNoise() Backend { return rnnoise{} }

type rnnoise struct{}

func (rnnoise) Name() string { return "rnnoise" }

func (rnnoise) FrameSize() int { return int(C.rnnoise_get_frame_size()) }

func (rnnoise) Create() (Model, error) {
	st := C.rnnoise_create(nil)
	if st == nil {
		return nil, ErrBackend
	}
	return &rnnoiseModel{st: st}, nil
}

type rnnoiseModel struct {
	st *C.DenoiseState
}

func (m *rnnoiseModel) ProcessFrame(out, in []float32) float32 {
	vad := C.rnnoise_process_frame(m.st,
		(*C.float)(unsafe.Pointer(&out[0])),
		(*C.float)(unsafe.Pointer(&in[0])))
	return float32(vad)
}

func (m *rnnoiseModel) Destroy() {
	if m.st == nil {
		return
	}
	C.rnnoise_destroy(m.st)
	m.st = nil
}
