// SPDX-License-Identifier: EPL-2.0

package codec

import "fmt"

// BytesPerSample is the width of one 16-bit PCM sample.
const BytesPerSample = 2

// Geometry is the sizing of one PCM frame.
type Geometry struct {
	FrameDurationUs int
	SampleRateHz    int
	SamplesPerFrame int
	BytesPerFrame   int
}

// ComputeGeometry asks fs for the samples in one frame of frameDurationUs
// at sampleRateHz and derives the 16-bit PCM byte size from it.
func ComputeGeometry(fs FrameSampler, frameDurationUs, sampleRateHz int) (Geometry, error) {
	if fs == nil {
		return Geometry{}, fmt.Errorf("%w: nil frame sampler", ErrInvalidGeometry)
	}

	if frameDurationUs <= 0 || sampleRateHz <= 0 {
		return Geometry{}, fmt.Errorf("%w: duration %dus, rate %dHz",
			ErrInvalidGeometry, frameDurationUs, sampleRateHz)
	}

	samples := fs.FrameSamples(frameDurationUs, sampleRateHz)
	if samples <= 0 {
		return Geometry{}, fmt.Errorf("%w: %dus at %dHz rejected by backend",
			ErrInvalidGeometry, frameDurationUs, sampleRateHz)
	}

	return Geometry{
		FrameDurationUs: frameDurationUs,
		SampleRateHz:    sampleRateHz,
		SamplesPerFrame: samples,
		BytesPerFrame:   samples * BytesPerSample,
	}, nil
}

// Valid reports whether g looks like a value produced by ComputeGeometry.
func (g Geometry) Valid() bool {
	return g.FrameDurationUs > 0 &&
		g.SampleRateHz > 0 &&
		g.SamplesPerFrame > 0 &&
		g.BytesPerFrame == g.SamplesPerFrame*BytesPerSample
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dus@%dHz (%d samples, %d bytes)",
		g.FrameDurationUs, g.SampleRateHz, g.SamplesPerFrame, g.BytesPerFrame)
}
