// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV files with
// github.com/go-audio/wav.
//
// Decoding returns an audio.Source of float32 samples in [-1.0, 1.0):
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Inputs that cannot seek are buffered in memory first, since the RIFF
// parser needs to move between chunks.
//
// WriteWAV16 is the output side of lc3conv decode: it takes the int16
// samples a decoded LC3 stream produces and writes a mono file.
//
//	f, _ := os.Create("speech.wav")
//	err := wav.WriteWAV16(f, 16000, samples)
//
// Errors:
//   - ErrNotWavFile: no RIFF/WAVE header
//   - ErrOnlyPCM16bitSupported: compressed or non 16-bit data
//   - ErrUnsupportedWavLayout: a header without channels or rate
package wav
