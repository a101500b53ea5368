// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes 16-bit PCM AIFF files with github.com/go-audio/aiff.
// Samples come out as float32 in [-1.0, 1.0) at the file's own rate and
// channel count; feed them through audio.MonoMixer and audio.Resampler
// before LC3 encoding.
package aiff
