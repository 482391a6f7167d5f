package biquad

import (
	"sync"

	archregistry "github.com/cwbudde/algo-bioflow/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section. a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
//
// A first-order section has B2 = A2 = 0.
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// FirstOrder reports whether the section reduces to a first-order filter.
func (c Coefficients) FirstOrder() bool {
	return c.B2 == 0 && c.A2 == 0
}

// Section is a single biquad with coefficients and delay-line state.
type Section struct {
	Coefficients

	d0, d1 float64
}

var (
	blockKernel     archregistry.BlockKernel
	blockKernelName string
	blockKernelOnce sync.Once
)

// NewSection returns a Section with the given coefficients and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place. The result is identical to calling
// ProcessSample on every element in order.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	blockKernelOnce.Do(selectBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	s.d0, s.d1 = blockKernel(coeffs, s.d0, s.d1, buf)
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	blockKernelOnce.Do(selectBlockKernel)
	return blockKernelName
}

func selectBlockKernel() {
	k := archregistry.Global.Select(cpu.DetectFeatures())
	if k == nil {
		panic("biquad: no block kernel registered (missing generic fallback?)")
	}

	blockKernel = k.Block
	blockKernelName = k.Name
}

// Reset clears the delay line.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// SetState restores a state previously returned by State.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
