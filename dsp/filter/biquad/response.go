package biquad

import (
	"math"
	"math/cmplx"
)

// ResponseAt evaluates H(z) of the section at an arbitrary point z.
func (c *Coefficients) ResponseAt(z complex128) complex128 {
	zi := 1 / z
	zi2 := zi * zi

	num := complex(c.B0, 0) + complex(c.B1, 0)*zi + complex(c.B2, 0)*zi2
	den := 1 + complex(c.A1, 0)*zi + complex(c.A2, 0)*zi2

	return num / den
}

// Response computes the complex frequency response H(e^jw) of the section
// at freqHz for the given sample rate.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	return c.ResponseAt(cmplx.Exp(complex(0, w)))
}

// MagnitudeDB returns 20*log10(|H(f)|) of the section.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ResponseAt evaluates the cascade transfer function, gain included, at z.
func (c *Chain) ResponseAt(z complex128) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].ResponseAt(z)
	}

	return h
}

// Response computes the complex frequency response of the cascade.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	return c.ResponseAt(cmplx.Exp(complex(0, w)))
}

// Magnitude returns |H(f)| of the cascade.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freqHz, sampleRate))
}

// MagnitudeDB returns the cascade magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(c.Magnitude(freqHz, sampleRate))
}

// ImpulseResponse computes n samples of the cascade impulse response on a
// cleared copy, leaving c untouched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	work := c.clone()
	work.Reset()

	ir := make([]float64, n)
	ir[0] = work.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = work.ProcessSample(0)
	}

	return ir
}
