//go:build amd64 && !purego

// Package avx2 registers a 4x-unrolled biquad kernel for AVX2-capable CPUs.
package avx2

import (
	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.Kernel{
		Name:     "unrolled4",
		Level:    cpu.SIMDAVX2,
		Priority: 20,
		Block:    block,
	})
}

// block keeps the recurrence scalar; the unroll only trims loop overhead and
// bounds checks, it does not reorder any arithmetic.
func block(c registry.Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+3 < n; i += 4 {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y

		x = buf[i+1]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+1] = y

		x = buf[i+2]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+2] = y

		x = buf[i+3]
		y = b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i+3] = y
	}

	for ; i < n; i++ {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
