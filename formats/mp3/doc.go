// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 Layer III streams with
// github.com/hajimehoshi/go-mp3.
//
// Output is always interleaved stereo at the stream's rate, so an LC3
// encode chain mixes it down first:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(src)
//	pcm := audio.NewResampler(mono, 16000)
//
// Reads always return whole stereo frames; a partial frame from the
// underlying decoder is held until the next read. Writing MP3 is not
// supported.
package mp3
