package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad"
)

// prewarp maps a digital frequency to the analog frequency that the bilinear
// transform s = (z-1)/(z+1) sends back to it.
func prewarp(freq, sampleRate float64) float64 {
	return math.Tan(math.Pi * freq / sampleRate)
}

func bilinear(s complex128) complex128 {
	return (1 + s) / (1 - s)
}

// denominator returns A1, A2 for the digital pole pair z1, z2, which are
// either complex conjugates or both real.
func denominator(z1, z2 complex128) (float64, float64) {
	return -real(z1 + z2), real(z1 * z2)
}

func lowpass(poles []complex128, wc float64) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, 0, len(poles))

	for _, p := range poles {
		z := bilinear(complex(wc, 0) * p)
		if imag(p) == 0 {
			sections = append(sections, biquad.Coefficients{B0: 1, B1: 1, A1: -real(z)})
			continue
		}

		a1, a2 := denominator(z, cmplx.Conj(z))
		sections = append(sections, biquad.Coefficients{B0: 1, B1: 2, B2: 1, A1: a1, A2: a2})
	}

	return sections
}

func highpass(poles []complex128, wc float64) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, 0, len(poles))

	for _, p := range poles {
		z := bilinear(complex(wc, 0) / p)
		if imag(p) == 0 {
			sections = append(sections, biquad.Coefficients{B0: 1, B1: -1, A1: -real(z)})
			continue
		}

		a1, a2 := denominator(z, cmplx.Conj(z))
		sections = append(sections, biquad.Coefficients{B0: 1, B1: -2, B2: 1, A1: a1, A2: a2})
	}

	return sections
}

// bandRoots solves s^2 - b*s + w0^2 = 0.
func bandRoots(b complex128, w0 float64) (complex128, complex128) {
	d := cmplx.Sqrt(b*b - complex(4*w0*w0, 0))
	return (b + d) / 2, (b - d) / 2
}

// bandSections turns each prototype pole into the analog pole pair given by
// roots and pairs the digital images into sections with numerator num.
func bandSections(poles []complex128, num [3]float64, roots func(p complex128) (complex128, complex128)) []biquad.Coefficients {
	sections := make([]biquad.Coefficients, 0, 2*len(poles))

	add := func(z1, z2 complex128) {
		a1, a2 := denominator(z1, z2)
		sections = append(sections, biquad.Coefficients{
			B0: num[0], B1: num[1], B2: num[2],
			A1: a1, A2: a2,
		})
	}

	for _, p := range poles {
		s1, s2 := roots(p)
		z1, z2 := bilinear(s1), bilinear(s2)

		if imag(p) == 0 {
			// The two images of a real pole are a conjugate or real pair.
			add(z1, z2)
			continue
		}

		add(z1, cmplx.Conj(z1))
		add(z2, cmplx.Conj(z2))
	}

	return sections
}

// bandpass applies s -> (s^2 + w0^2) / (bw*s).
func bandpass(poles []complex128, w0, bw float64) []biquad.Coefficients {
	return bandSections(poles, [3]float64{1, 0, -1}, func(p complex128) (complex128, complex128) {
		return bandRoots(p*complex(bw, 0), w0)
	})
}

// bandstop applies s -> bw*s / (s^2 + w0^2); zeros land on the unit circle
// at the prewarped center.
func bandstop(poles []complex128, w0, bw float64) []biquad.Coefficients {
	c := math.Cos(2 * math.Atan(w0))

	return bandSections(poles, [3]float64{1, -2 * c, 1}, func(p complex128) (complex128, complex128) {
		return bandRoots(complex(bw, 0)/p, w0)
	})
}

// normalize scales the numerator so the section has unit magnitude at ref.
func normalize(c *biquad.Coefficients, ref complex128) {
	g := cmplx.Abs(c.ResponseAt(ref))
	if g == 0 || math.IsInf(g, 0) || math.IsNaN(g) {
		return
	}

	c.B0 /= g
	c.B1 /= g
	c.B2 /= g
}
