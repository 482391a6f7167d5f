package frequency

import (
	"fmt"
	"math"
)

// ToneAmplitude estimates the amplitude of the sinusoid at freqHz in data
// with a single-bin Goertzel evaluation. The estimate is exact when data
// holds a whole number of periods of freqHz.
func ToneAmplitude(data []float64, freqHz float64, samplingRate int) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty signal", ErrInvalidLength)
	}

	if samplingRate <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSampleRate, samplingRate)
	}

	fs := float64(samplingRate)
	if freqHz <= 0 || freqHz >= fs/2 || math.IsNaN(freqHz) {
		return 0, fmt.Errorf("%w: tone %g Hz outside (0, %g)", ErrInvalidBand, freqHz, fs/2)
	}

	w := 2 * math.Pi * freqHz / fs
	coeff := 2 * math.Cos(w)

	var s0, s1 float64
	for _, x := range data {
		s0, s1 = x+coeff*s0-s1, s0
	}

	power := s0*s0 + s1*s1 - coeff*s0*s1

	return 2 * math.Sqrt(max(power, 0)) / float64(len(data)), nil
}
