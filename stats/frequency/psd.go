package frequency

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrInvalidSampleRate is returned for a non-positive sampling rate.
	ErrInvalidSampleRate = errors.New("frequency: sampling rate must be positive")
	// ErrInvalidBand is returned when a band does not lie inside the spectrum.
	ErrInvalidBand = errors.New("frequency: invalid band")
)

// Spectrum is a one-sided power spectral density. Amplitudes[i] is the
// power density at Frequencies[i] Hz; both slices have n/2+1 entries for an
// n-sample input.
type Spectrum struct {
	Amplitudes  []float64
	Frequencies []float64
}

// Resolution returns the bin spacing in Hz.
func (p Spectrum) Resolution() float64 {
	if len(p.Frequencies) < 2 {
		return 0
	}

	return p.Frequencies[1] - p.Frequencies[0]
}

// PSD computes the periodogram of data after applying window w. The length
// of data must be a power of two and at least 2. Bins between DC and Nyquist
// are doubled so the one-sided spectrum keeps the total power. data is not
// modified.
func PSD(data []float64, samplingRate int, w WindowType) (Spectrum, error) {
	n := len(data)
	if n < 2 || bits.OnesCount(uint(n)) != 1 {
		return Spectrum{}, fmt.Errorf("%w: %d is not a power of two", ErrInvalidLength, n)
	}

	if samplingRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, samplingRate)
	}

	win, err := Window(w, n)
	if err != nil {
		return Spectrum{}, err
	}

	buf := make([]complex128, n)
	for i, x := range data {
		buf[i] = complex(x*win[i], 0)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Spectrum{}, fmt.Errorf("frequency: fft plan: %w", err)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return Spectrum{}, fmt.Errorf("frequency: fft: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(buf[i])
		im[i] = imag(buf[i])
	}

	amps := make([]float64, bins)
	vecmath.Power(amps, re, im)

	fs := float64(samplingRate)
	vecmath.ScaleBlockInPlace(amps, 1/(fs*float64(n)))
	for i := 1; i < bins-1; i++ {
		amps[i] *= 2
	}

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * fs / float64(n)
	}

	return Spectrum{Amplitudes: amps, Frequencies: freqs}, nil
}

// BandPower integrates psd over [start, stop] Hz with the trapezoidal rule.
// Only bins inside the band contribute, and the band must cover at least two
// bins.
func BandPower(psd Spectrum, start, stop float64) (float64, error) {
	if len(psd.Amplitudes) != len(psd.Frequencies) || len(psd.Frequencies) < 2 {
		return 0, fmt.Errorf("%w: malformed spectrum", ErrInvalidLength)
	}

	last := psd.Frequencies[len(psd.Frequencies)-1]
	if start < 0 || stop <= start || stop > last {
		return 0, fmt.Errorf("%w: [%g, %g] outside [0, %g]", ErrInvalidBand, start, stop, last)
	}

	lo, hi := -1, -1
	for i, f := range psd.Frequencies {
		if f < start {
			continue
		}

		if f > stop {
			break
		}

		if lo < 0 {
			lo = i
		}

		hi = i
	}

	if lo < 0 || hi-lo < 1 {
		return 0, fmt.Errorf("%w: [%g, %g] spans fewer than two bins", ErrInvalidBand, start, stop)
	}

	return integrate.Trapezoidal(psd.Frequencies[lo:hi+1], psd.Amplitudes[lo:hi+1]), nil
}
