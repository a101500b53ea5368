// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"sync"

	"github.com/ik5/lc3bridge/denoise"
)

// Denoiser is a denoise.Backend whose models scale every sample by Gain
// and report Gain as the voice probability. Silence stays silent.
type Denoiser struct {
	Gain float32
	// FailCreate makes Create fail.
	FailCreate bool
	// Size overrides the reported frame size when non-zero.
	Size int

	mtx   sync.Mutex
	live  int
	calls int
}

func NewDenoiser(gain float32) *Denoiser {
	return &Denoiser{Gain: gain}
}

// Live is the number of models created and not yet destroyed.
func (d *Denoiser) Live() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.live
}

// Calls is the number of frames processed by all models.
func (d *Denoiser) Calls() int {
	d.mtx.Lock()
	defer d.mtx.Unlock()
	return d.calls
}

func (d *Denoiser) Name() string { return "fake-denoise" }

func (d *Denoiser) FrameSize() int {
	if d.Size != 0 {
		return d.Size
	}
	return denoise.FrameSize
}

func (d *Denoiser) Create() (denoise.Model, error) {
	if d.FailCreate {
		return nil, errors.New("audiotest: create failed")
	}

	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.live++
	return &model{owner: d}, nil
}

type model struct {
	owner     *Denoiser
	destroyed bool
}

func (m *model) ProcessFrame(out, in []float32) float32 {
	m.owner.mtx.Lock()
	m.owner.calls++
	m.owner.mtx.Unlock()

	for i, x := range in {
		out[i] = x * m.owner.Gain
	}
	return m.owner.Gain
}

func (m *model) Destroy() {
	m.owner.mtx.Lock()
	defer m.owner.mtx.Unlock()

	if m.destroyed {
		return
	}
	m.destroyed = true
	m.owner.live--
}
