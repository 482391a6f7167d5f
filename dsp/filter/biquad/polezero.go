package biquad

import "math/cmplx"

// Poles returns the z-plane roots of 1 + A1*z^-1 + A2*z^-2. A first-order
// section reports its single pole first and 0 second.
func (c *Coefficients) Poles() [2]complex128 {
	if c.A2 == 0 {
		return [2]complex128{complex(-c.A1, 0), 0}
	}

	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	return [2]complex128{
		(complex(-c.A1, 0) + disc) / 2,
		(complex(-c.A1, 0) - disc) / 2,
	}
}

// MaxPoleRadius returns the largest pole magnitude across the cascade. The
// chain is stable when the result is below 1.
func (c *Chain) MaxPoleRadius() float64 {
	r := 0.0
	for i := range c.sections {
		for _, p := range c.sections[i].Poles() {
			if m := cmplx.Abs(p); m > r {
				r = m
			}
		}
	}

	return r
}
