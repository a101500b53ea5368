// SPDX-License-Identifier: EPL-2.0

// Package denoise applies single-frame neural noise suppression (RNNoise).
//
// RNNoise works on 480-sample frames (10 ms at 48 kHz) of float samples in
// the int16 range. A State holds one model instance and is meant to live
// for a whole stream: the model keeps context from frame to frame.
//
//	st, err := denoise.NewState(denoise.Default())
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	var f denoise.Frame
//	copy(f[:], samples)
//	if _, err := st.Denoise(&f); err != nil {
//	    return err
//	}
//	// f now holds the denoised samples.
//
// Denoise works in place: the *Frame it returns is the one it was given and
// the input samples are gone. FrameOf converts a caller slice of exactly
// FrameSize samples into a *Frame that aliases it.
//
// # Backends
//
// Build with the "rnnoise" tag (cgo and librnnoise required) to get the
// real model from Default. Without the tag Default is PassThrough, which
// leaves the samples untouched.
//
// # Handles
//
// Registry hands out integer Tokens for callers that cannot hold Go
// pointers. The registry only guards its map; calls on one token from
// several goroutines must be serialised by the caller.
//
// # Streaming
//
// Source wraps a mono 48 kHz audio.Source and denoises it frame by frame.
package denoise
