// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
// Samples come out interleaved at the stream's own rate and channel count.
// Vorbis decodes to float natively, so no integer scaling is involved.
//
//	src, err := vorbis.Decoder{}.Decode(f)
//	pcm := audio.NewResampler(audio.NewMonoMixer(src), 16000)
package vorbis
