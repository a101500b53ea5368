// SPDX-License-Identifier: EPL-2.0

package denoise

// PassThrough returns a backend whose models copy input to output and
// report no voice activity.
func PassThrough() Backend { return passThrough{} }

type passThrough struct{}

func (passThrough) Name() string          { return "passthrough" }
func (passThrough) FrameSize() int        { return FrameSize }
func (passThrough) Create() (Model, error) { return passThroughModel{}, nil }

type passThroughModel struct{}

func (passThroughModel) ProcessFrame(out, in []float32) float32 {
	copy(out, in)
	return 0
}

func (passThroughModel) Destroy() {}
