package datafilter

import (
	"slices"

	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad"
	"github.com/cwbudde/algo-bioflow/dsp/filter/design/iir"
)

func checkData(data []float64) error {
	if len(data) == 0 {
		return reject(nil, invalidArgs("data is empty"))
	}

	return nil
}

// runChain filters data in place with a fresh cascade. Zero-phase filter
// types run it forward, then again over the reversed output with cleared
// state, and restore the original order.
func runChain(data []float64, c *biquad.Chain, zeroPhase bool) {
	c.ProcessBlock(data)
	if !zeroPhase {
		return
	}

	slices.Reverse(data)
	c.Reset()
	c.ProcessBlock(data)
	slices.Reverse(data)
}

func performIIR(data []float64, band iir.Band, samplingRate int, freq, width float64, order int, filterType FilterType, ripple float64) (err error) {
	defer recoverInto(&err)

	if err := checkData(data); err != nil {
		return err
	}

	c, err := designChain(band, samplingRate, freq, width, order, filterType, ripple, true)
	if err != nil {
		return err
	}

	runChain(data, c, filterType.ZeroPhase())

	return nil
}

// PerformLowpass low-pass filters data in place.
func PerformLowpass(data []float64, samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) error {
	return performIIR(data, iir.Lowpass, samplingRate, cutoff, 0, order, filterType, ripple)
}

// PerformHighpass high-pass filters data in place.
func PerformHighpass(data []float64, samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) error {
	return performIIR(data, iir.Highpass, samplingRate, cutoff, 0, order, filterType, ripple)
}

// PerformBandpass band-pass filters data in place.
func PerformBandpass(data []float64, samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) error {
	return performIIR(data, iir.Bandpass, samplingRate, centerFreq, bandWidth, order, filterType, ripple)
}

// PerformBandstop band-stop filters data in place.
func PerformBandstop(data []float64, samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) error {
	return performIIR(data, iir.Bandstop, samplingRate, centerFreq, bandWidth, order, filterType, ripple)
}

// RemoveEnvironmentalNoise removes mains interference from data in place.
func RemoveEnvironmentalNoise(data []float64, samplingRate int, noiseType NoiseType) (err error) {
	defer recoverInto(&err)

	if err := checkData(data); err != nil {
		return err
	}

	f, err := NewEnvironmentalNoise(samplingRate, noiseType)
	if err != nil {
		return err
	}

	f.Process(data)

	return nil
}

// PerformRollingFilter replaces every sample of data with the rolling
// aggregate ending at it.
func PerformRollingFilter(data []float64, period int, op AggOperation) (err error) {
	defer recoverInto(&err)

	if err := checkData(data); err != nil {
		return err
	}

	f, err := NewRolling(period, op)
	if err != nil {
		return err
	}

	f.Process(data)

	return nil
}

// PerformDownsampling returns one aggregate per complete group of period
// samples, len(data)/period values in total. data is left unmodified.
func PerformDownsampling(data []float64, period int, op AggOperation) (out []float64, err error) {
	defer recoverInto(&err)

	if err := checkData(data); err != nil {
		return nil, err
	}

	f, err := NewDownsampling(period, op)
	if err != nil {
		return nil, err
	}

	buf := slices.Clone(data)
	n := f.Process(buf)

	return slices.Clip(buf[:n]), nil
}
