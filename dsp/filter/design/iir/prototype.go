package iir

import "math"

// prototype returns the analog lowpass prototype poles for a 1 rad/s cutoff.
// Only one pole of each conjugate pair is listed (positive imaginary part),
// ordered from the lowest to the highest Q, followed by the real pole of an
// odd order.
func prototype(family Family, order int, rippleDB float64) []complex128 {
	switch family {
	case ChebyshevI:
		return chebyshev1Poles(order, rippleDB)
	case Bessel:
		return besselPoles(order)
	default:
		return butterworthPoles(order)
	}
}

func butterworthPoles(order int) []complex128 {
	poles := make([]complex128, 0, (order+1)/2)

	for k := order/2 - 1; k >= 0; k-- {
		theta := math.Pi * float64(2*k+1) / (2 * float64(order))
		poles = append(poles, complex(-math.Sin(theta), math.Cos(theta)))
	}

	if order%2 != 0 {
		poles = append(poles, -1)
	}

	return poles
}

// chebyshev1Poles places the poles on an ellipse so that the magnitude
// response equiripples by rippleDB up to 1 rad/s.
func chebyshev1Poles(order int, rippleDB float64) []complex128 {
	eps := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	mu := math.Asinh(1/eps) / float64(order)
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, 0, (order+1)/2)

	for k := order/2 - 1; k >= 0; k-- {
		theta := math.Pi * float64(2*k+1) / (2 * float64(order))
		poles = append(poles, complex(-sh*math.Sin(theta), ch*math.Cos(theta)))
	}

	if order%2 != 0 {
		poles = append(poles, complex(-sh, 0))
	}

	return poles
}

// besselPoles scales the delay-normalized poles so that the prototype is
// 3 dB down at 1 rad/s.
func besselPoles(order int) []complex128 {
	delay := besselDelayPoles[order]
	scale := besselScaleFactors[order]

	poles := make([]complex128, len(delay))
	for i, p := range delay {
		poles[i] = complex(real(p)/scale, imag(p)/scale)
	}

	return poles
}

// besselDelayPoles contains delay-normalized Bessel poles. One pole per
// conjugate pair is stored; for odd orders the real pole is listed last.
//
// Source: C.R. Bond, "Bessel Filter Constants".
var besselDelayPoles = [MaxOrder + 1][]complex128{
	{},
	{complex(-1.0, 0)},
	{complex(-1.5, 0.8660254038)},
	{complex(-1.8389073227, 1.7543809598), complex(-2.3221853546, 0)},
	{complex(-2.1037893972, 2.6574180419), complex(-2.8962106028, 0.8672341289)},
	{
		complex(-2.3246743032, 3.5710229203),
		complex(-3.3519563992, 1.7426614162),
		complex(-3.6467385953, 0),
	},
	{
		complex(-2.5159322478, 4.4926729537),
		complex(-3.7357083563, 2.6262723114),
		complex(-4.2483593959, 0.8675096732),
	},
	{
		complex(-2.6856768789, 5.4206941307),
		complex(-4.0701391636, 3.5171740477),
		complex(-4.7582905282, 1.7392860613),
		complex(-4.9717868585, 0),
	},
	{
		complex(-2.8389839177, 6.3539112470),
		complex(-4.3682892668, 4.4144425006),
		complex(-5.2048407906, 2.6161751538),
		complex(-5.5878860022, 0.8676144454),
	},
}

// besselScaleFactors convert delay-normalized poles to -3 dB normalization.
var besselScaleFactors = [MaxOrder + 1]float64{
	0,
	1.0,
	1.36165412871613,
	1.75567236868121,
	2.11391767490422,
	2.42741070215263,
	2.70339506120292,
	2.95172214703872,
	3.17961723751065,
}
