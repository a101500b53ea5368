// SPDX-License-Identifier: EPL-2.0

// Package lc3 binds the liblc3 codec as a codec.Backend.
//
// The native binding is compiled with the "lc3" build tag and needs cgo and
// liblc3 headers and library on the system:
//
//	go build -tags lc3 ./...
//
// Without the tag New returns a backend that still answers geometry
// queries but fails to allocate codec state with codec.ErrUnavailable.
package lc3

// Frame durations accepted by liblc3, in microseconds.
const (
	Duration7500us  = 7500
	Duration10000us = 10000
)

// FrameSamples mirrors lc3_frame_samples: the number of PCM samples in one
// frame, or -1 when the duration or rate is not an LC3 configuration.
// 44.1 kHz is coded as 48 kHz.
func FrameSamples(frameDurationUs, sampleRateHz int) int {
	switch frameDurationUs {
	case Duration7500us, Duration10000us:
	default:
		return -1
	}

	switch sampleRateHz {
	case 8000, 16000, 24000, 32000, 48000:
	case 44100:
		sampleRateHz = 48000
	default:
		return -1
	}

	return (sampleRateHz * (frameDurationUs / 100)) / 10000
}

// FrameBytes mirrors lc3_frame_bytes: the encoded size of one frame at
// bitrate bits per second, clamped to the LC3 frame byte range.
func FrameBytes(frameDurationUs, bitrate int) int {
	if FrameSamples(frameDurationUs, 8000) < 0 || bitrate <= 0 {
		return -1
	}

	n := (bitrate * frameDurationUs) / (8 * 1000000)
	return max(20, min(n, 400))
}
