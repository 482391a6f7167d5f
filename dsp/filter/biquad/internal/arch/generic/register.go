// Package generic registers the portable biquad block kernel.
package generic

import (
	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:     "generic",
		Level:    cpu.SIMDNone,
		Priority: 0,
		Block:    Block,
	})
}

// Block is the reference kernel: one sample per iteration.
func Block(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	for i, x := range buf {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
