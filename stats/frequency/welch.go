package frequency

import (
	"fmt"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// PSDWelch estimates the power spectral density by averaging windowed
// periodograms of nfft-sample segments that advance by nfft-overlap
// samples. nfft must be a power of two no longer than data, and overlap
// must lie in [0, nfft). Segments are scaled by the window power, so a
// rectangular window over a single segment gives the same result as PSD.
func PSDWelch(data []float64, nfft, overlap, samplingRate int, w WindowType) (Spectrum, error) {
	if nfft < 2 || bits.OnesCount(uint(nfft)) != 1 {
		return Spectrum{}, fmt.Errorf("%w: nfft %d is not a power of two", ErrInvalidLength, nfft)
	}

	if overlap < 0 || overlap >= nfft {
		return Spectrum{}, fmt.Errorf("%w: overlap %d outside [0, %d)", ErrInvalidLength, overlap, nfft)
	}

	if len(data) < nfft {
		return Spectrum{}, fmt.Errorf("%w: %d samples shorter than nfft %d", ErrInvalidLength, len(data), nfft)
	}

	if samplingRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, samplingRate)
	}

	win, err := Window(w, nfft)
	if err != nil {
		return Spectrum{}, err
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return Spectrum{}, fmt.Errorf("frequency: fft plan: %w", err)
	}

	bins := nfft/2 + 1
	buf := make([]complex128, nfft)
	re := make([]float64, bins)
	im := make([]float64, bins)
	power := make([]float64, bins)
	sum := make([]float64, bins)

	step := nfft - overlap
	segments := 0
	for start := 0; start+nfft <= len(data); start += step {
		for i, x := range data[start : start+nfft] {
			buf[i] = complex(x*win[i], 0)
		}

		if err := plan.Forward(buf, buf); err != nil {
			return Spectrum{}, fmt.Errorf("frequency: fft: %w", err)
		}

		for i := range bins {
			re[i] = real(buf[i])
			im[i] = imag(buf[i])
		}

		vecmath.Power(power, re, im)
		floats.Add(sum, power)
		segments++
	}

	fs := float64(samplingRate)
	vecmath.ScaleBlockInPlace(sum, 1/(fs*floats.Dot(win, win)*float64(segments)))
	for i := 1; i < bins-1; i++ {
		sum[i] *= 2
	}

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * fs / float64(nfft)
	}

	return Spectrum{Amplitudes: sum, Frequencies: freqs}, nil
}
