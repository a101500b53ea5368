// SPDX-License-Identifier: EPL-2.0

// Package lc3bridge converts between LC3 frames and 16-bit PCM and runs
// single-frame RNNoise denoising, for callers that hand over whole byte
// buffers.
//
// # Flat calls
//
// Decode and Encode use a fixed geometry of 10 ms frames at 16 kHz with
// 20-byte LC3 frames. Each call owns a fresh codec handle, so no state
// carries between calls:
//
//	pcm, err := lc3bridge.Decode(frames) // len(pcm) == len(frames)/20*320
//	lc3, err := lc3bridge.Encode(pcm)    // len(lc3) == len(pcm)/320*20
//
// Input that does not fill a whole frame at the end is dropped. The drop is
// logged at debug level and counted in the lc3bridge.dropped_bytes metric.
// If any frame fails the call returns a *codec.FrameError and no output.
//
// Denoising works on integer handles:
//
//	tok, err := lc3bridge.CreateDenoiseState()
//	defer lc3bridge.DestroyDenoiseState(tok)
//	frame, err = lc3bridge.Denoise(tok, frame) // 480 samples, in place
//
// # Sessions
//
// A Converter keeps one encoder and one decoder alive between calls, for
// streams that arrive in pieces and need the codec's inter-frame state:
//
//	c, err := lc3bridge.NewConverter(lc3bridge.WithEncodedFrameSize(40))
//	defer c.Close()
//	for chunk := range chunks {
//	    pcm, err := c.Decode(chunk)
//	}
//
// ResetEncoder and ResetDecoder start one direction over without touching
// the other.
//
// # Files
//
// EncodeSource drives any audio.Source, e.g. from formats/wav or
// formats/mp3, through mixing, optional denoising and resampling into a
// Converter. DecodeToSource goes the other way.
//
// # Native libraries
//
// liblc3 is linked with the "lc3" build tag and librnnoise with the
// "rnnoise" tag. Without them codec calls fail with codec.ErrUnavailable
// and denoising passes frames through unchanged.
package lc3bridge
