package frequency

import (
	"fmt"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
)

// FFT returns the n/2+1 non-negative frequency bins of the windowed real
// signal data. The length of data must be even and at least 2.
func FFT(data []float64, w WindowType) ([]complex128, error) {
	n := len(data)
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("%w: fft needs an even length, got %d", ErrInvalidLength, n)
	}

	win, err := Window(w, n)
	if err != nil {
		return nil, err
	}

	windowed := make([]float64, n)
	for i, x := range data {
		windowed[i] = x * win[i]
	}

	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return nil, fmt.Errorf("frequency: fft plan: %w", err)
	}

	out := make([]complex128, plan.SpectrumLen())
	if err := plan.Forward(out, windowed); err != nil {
		return nil, fmt.Errorf("frequency: fft: %w", err)
	}

	return out, nil
}

// IFFT restores the 2*(len(spectrum)-1) real samples whose FFT is
// spectrum. The imaginary parts of the DC and Nyquist bins are ignored, as
// they are zero for every real signal.
func IFFT(spectrum []complex128) ([]float64, error) {
	if len(spectrum) < 2 {
		return nil, fmt.Errorf("%w: ifft needs at least 2 bins, got %d", ErrInvalidLength, len(spectrum))
	}

	n := 2 * (len(spectrum) - 1)

	plan, err := algofft.NewPlanReal64(n)
	if err != nil {
		return nil, fmt.Errorf("frequency: ifft plan: %w", err)
	}

	src := make([]complex128, len(spectrum))
	copy(src, spectrum)
	src[0] = complex(real(src[0]), 0)
	src[len(src)-1] = complex(real(src[len(src)-1]), 0)

	out := make([]float64, n)
	if err := plan.Inverse(out, src); err != nil {
		return nil, fmt.Errorf("frequency: ifft: %w", err)
	}

	return out, nil
}

// NearestPowerOfTwo returns the power of two closest to value. Ties go to
// the larger one.
func NearestPowerOfTwo(value int) (int, error) {
	if value < 1 || value > 1<<(bits.UintSize-2) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, value)
	}

	upper := 1 << bits.Len(uint(value-1))
	lower := upper >> 1
	if lower == 0 || upper-value <= value-lower {
		return upper, nil
	}

	return lower, nil
}
