package datafilter

import (
	"slices"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-bioflow/stats/frequency"
)

// Band is a frequency range in Hz.
type Band struct {
	Start, Stop float64
}

// EEGBands are the delta, theta, alpha, beta and gamma bands used by
// AvgBandPowers.
var EEGBands = []Band{{2, 4}, {4, 8}, {8, 13}, {13, 30}, {30, 45}}

// CalcStddev returns the population standard deviation of data[start:end].
func CalcStddev(data []float64, start, end int) (_ float64, err error) {
	defer recoverInto(&err)

	if start < 0 || end > len(data) || start >= end {
		return 0, reject(logrus.Fields{"start": start, "end": end, "len": len(data)}, invalidArgs("invalid range [%d, %d) for %d samples", start, end, len(data)))
	}

	return stat.PopStdDev(data[start:end], nil), nil
}

// PerformFFT returns the len(data)/2+1 bins of the windowed real FFT. The
// length of data must be even.
func PerformFFT(data []float64, w frequency.WindowType) (_ []complex128, err error) {
	defer recoverInto(&err)

	out, err := frequency.FFT(data, w)
	return out, translate(err)
}

// PerformIFFT inverts PerformFFT, returning 2*(len(spectrum)-1) samples.
func PerformIFFT(spectrum []complex128) (_ []float64, err error) {
	defer recoverInto(&err)

	out, err := frequency.IFFT(spectrum)
	return out, translate(err)
}

// GetNearestPowerOfTwo returns the power of two closest to value.
func GetNearestPowerOfTwo(value int) (int, error) {
	n, err := frequency.NearestPowerOfTwo(value)
	return n, translate(err)
}

// GetPSD computes the periodogram of data, whose length must be a power of
// two.
func GetPSD(data []float64, samplingRate int, w frequency.WindowType) (_ frequency.Spectrum, err error) {
	defer recoverInto(&err)

	psd, err := frequency.PSD(data, samplingRate, w)
	return psd, translate(err)
}

// GetPSDWelch computes a Welch estimate from nfft-sample segments that
// overlap by overlap samples.
func GetPSDWelch(data []float64, nfft, overlap, samplingRate int, w frequency.WindowType) (_ frequency.Spectrum, err error) {
	defer recoverInto(&err)

	psd, err := frequency.PSDWelch(data, nfft, overlap, samplingRate, w)
	return psd, translate(err)
}

// GetBandPower integrates psd over [start, stop] Hz.
func GetBandPower(psd frequency.Spectrum, start, stop float64) (float64, error) {
	p, err := frequency.BandPower(psd, start, stop)
	return p, translate(err)
}

// AvgBandPowers is CustomBandPowers over EEGBands.
func AvgBandPowers(data [][]float64, channels []int, samplingRate int, applyFilters bool) (avg, stddev []float64, err error) {
	return CustomBandPowers(data, EEGBands, channels, samplingRate, applyFilters)
}

// CustomBandPowers computes, for every selected row of data, the power in
// each band relative to the total over all bands, and returns the mean and
// population standard deviation of those ratios across channels. With
// applyFilters each channel is detrended, cleared of 50 and 60 Hz mains
// below Nyquist and band-passed to the span of bands first. data is left
// unmodified.
func CustomBandPowers(data [][]float64, bands []Band, channels []int, samplingRate int, applyFilters bool) (avg, stddev []float64, err error) {
	defer recoverInto(&err)

	if err := checkBandPowerArgs(data, bands, channels, samplingRate); err != nil {
		return nil, nil, err
	}

	lo, hi := bands[0].Start, bands[0].Stop
	for _, b := range bands[1:] {
		lo = min(lo, b.Start)
		hi = max(hi, b.Stop)
	}

	ratios := make([][]float64, len(bands))
	for i := range ratios {
		ratios[i] = make([]float64, len(channels))
	}

	for c, ch := range channels {
		row := slices.Clone(data[ch])

		if applyFilters {
			if err := prefilter(row, samplingRate, lo, hi); err != nil {
				return nil, nil, err
			}
		}

		powers, err := bandPowers(row, bands, samplingRate)
		if err != nil {
			return nil, nil, err
		}

		for i, p := range powers {
			ratios[i][c] = p
		}
	}

	avg = make([]float64, len(bands))
	stddev = make([]float64, len(bands))
	for i, r := range ratios {
		avg[i], stddev[i] = stat.PopMeanStdDev(r, nil)
	}

	return avg, stddev, nil
}

func checkBandPowerArgs(data [][]float64, bands []Band, channels []int, samplingRate int) error {
	if len(bands) == 0 || len(channels) == 0 {
		return reject(logrus.Fields{"bands": len(bands), "channels": len(channels)}, invalidArgs("bands and channels must not be empty"))
	}

	if samplingRate <= 0 {
		return reject(logrus.Fields{"sampling_rate": samplingRate}, invalidArgs("sampling rate must be positive"))
	}

	for _, b := range bands {
		if b.Start < 0 || b.Stop <= b.Start {
			return reject(logrus.Fields{"start": b.Start, "stop": b.Stop}, invalidArgs("invalid band [%g, %g]", b.Start, b.Stop))
		}
	}

	for _, ch := range channels {
		if ch < 0 || ch >= len(data) {
			return reject(logrus.Fields{"channel": ch, "rows": len(data)}, invalidArgs("channel %d out of range", ch))
		}

		if err := checkData(data[ch]); err != nil {
			return err
		}
	}

	return nil
}

func prefilter(row []float64, samplingRate int, lo, hi float64) error {
	const (
		order     = 4
		stopWidth = 4.0
	)

	if err := Detrend(row, Constant); err != nil {
		return err
	}

	nyquist := float64(samplingRate) / 2
	for _, mains := range []float64{50, 60} {
		if mains+stopWidth/2 >= nyquist {
			continue
		}

		if err := PerformBandstop(row, samplingRate, mains, stopWidth, order, ButterworthZeroPhase, 0); err != nil {
			return err
		}
	}

	return PerformBandpass(row, samplingRate, (lo+hi)/2, hi-lo, order, ButterworthZeroPhase, 0)
}

// bandPowers returns the Welch band powers of row normalised to sum to one.
func bandPowers(row []float64, bands []Band, samplingRate int) ([]float64, error) {
	nfft, err := GetNearestPowerOfTwo(2 * samplingRate)
	if err != nil {
		return nil, err
	}

	for nfft > len(row) {
		nfft /= 2
	}

	if nfft < 2 {
		return nil, reject(logrus.Fields{"samples": len(row)}, invalidArgs("%d samples are too few for a spectrum", len(row)))
	}

	psd, err := GetPSDWelch(row, nfft, nfft/2, samplingRate, frequency.Hanning)
	if err != nil {
		return nil, err
	}

	powers := make([]float64, len(bands))
	total := 0.0
	for i, b := range bands {
		p, err := GetBandPower(psd, b.Start, b.Stop)
		if err != nil {
			return nil, err
		}

		powers[i] = p
		total += p
	}

	if total <= 0 {
		return nil, reject(nil, invalidArgs("no signal power inside the requested bands"))
	}

	for i := range powers {
		powers[i] /= total
	}

	return powers, nil
}
