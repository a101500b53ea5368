// SPDX-License-Identifier: EPL-2.0

// Package audio is the float sample graph that feeds the LC3 encoder.
//
// Everything is a Source: container decoders (formats/...), in-memory
// buffers (SliceSource), and the processing stages that wrap another
// Source:
//   - Resampler changes the sample rate (Catmull-Rom cubic)
//   - MonoMixer averages channels
//
// A typical chain before LC3 encoding, from a 44.1 kHz stereo file to the
// 16 kHz mono PCM the codec wants:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	mono := audio.NewMonoMixer(src)
//	pcm := audio.NewResampler(mono, 16000)
//	samples, err := audio.ReadAll(pcm, 4096)
//	data := audio.PCM16Bytes(samples)
//
// Mixing before resampling halves the interpolation work for stereo input.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], interleaved by channel. PCM16Bytes
// and NewPCM16Source convert to and from the 16-bit little-endian byte
// layout used on the codec side.
//
// # Registry
//
// Registry maps file extensions to decoders so a command can pick one by
// path:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.ForPath("speech.wav")
//
// # End of Stream
//
// ReadSamples returns io.EOF with n == 0 once a source is exhausted; any
// other error is a failure of the underlying reader.
package audio
