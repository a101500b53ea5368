// SPDX-License-Identifier: EPL-2.0

// Package codec turns an opaque single-frame LC3 codec into a streaming
// byte-buffer transform.
//
// The package has three layers:
//   - Geometry: samples and bytes per PCM frame for a frame duration and
//     sample rate, as reported by the backend
//   - State handles: Encoder and Decoder own a backend-sized memory region
//     and release it exactly once on Close
//   - Pipeline: DecodeStream and EncodeStream walk an input buffer in fixed
//     strides and accumulate every frame's output into one buffer
//
// # Backends
//
// A Backend is the native library seen through Go. The codec/lc3 package
// provides the liblc3 binding (build tag "lc3"); tests use the fake in
// internal/audiotest.
//
//	b := lc3.New()
//	g, err := codec.ComputeGeometry(b, 10000, 16000)
//	if err != nil {
//	    return err
//	}
//
//	var pcm []byte
//	err = codec.WithDecoder(b, g, codec.Mono, func(dec *codec.Decoder) error {
//	    pcm, err = codec.DecodeStream(frames, dec, 20, g.BytesPerFrame)
//	    return err
//	})
//
// # Framing
//
// Frames are processed strictly in input order because the codec carries
// inter-frame prediction state. Input bytes that do not fill a whole frame
// are dropped and never carried over to a later call: a stream of 45 bytes
// with 20-byte frames decodes two frames and loses the last 5 bytes.
//
// # Errors
//
// A failing frame aborts the whole call and no partial output is returned.
// The error is a *FrameError holding the frame index and matches ErrCodec:
//
//	out, err := codec.DecodeStream(in, dec, 20, g.BytesPerFrame)
//	var fe *codec.FrameError
//	if errors.As(err, &fe) {
//	    log.Printf("frame %d failed: %v", fe.Index, fe.Err)
//	}
package codec
