package datafilter

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-bioflow/dsp/downsample"
	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad"
	"github.com/cwbudde/algo-bioflow/dsp/filter/design/iir"
	"github.com/cwbudde/algo-bioflow/dsp/rolling"
)

// MaxFilterOrder is the highest order accepted by the IIR constructors.
const MaxFilterOrder = iir.MaxOrder

// Filter is a stateful stream operator. Process filters data in place and
// returns the number of valid output samples at the front of data: len(data)
// for IIR and rolling filters, one per completed group for downsampling.
//
// A Filter is not safe for concurrent use.
type Filter interface {
	Process(data []float64) int
	// Reset returns the filter to its freshly constructed state.
	Reset()
}

// Responder is implemented by filters with a linear frequency response.
type Responder interface {
	Response(freqHz, sampleRate float64) complex128
}

// iirFilter runs one or more cascades in series.
type iirFilter struct {
	chains []*biquad.Chain
}

func (f *iirFilter) Process(data []float64) int {
	for _, c := range f.chains {
		c.ProcessBlock(data)
	}

	return len(data)
}

func (f *iirFilter) Reset() {
	for _, c := range f.chains {
		c.Reset()
	}
}

// Response is the complex frequency response of all cascades in series.
func (f *iirFilter) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, c := range f.chains {
		h *= c.Response(freqHz, sampleRate)
	}

	return h
}

// rollingFilter replaces each sample with the window aggregate after adding
// it. A nil window passes samples through unchanged.
type rollingFilter struct {
	window rolling.Window
}

func (f *rollingFilter) Process(data []float64) int {
	if f.window == nil {
		return len(data)
	}

	for i, x := range data {
		f.window.Add(x)
		data[i] = f.window.Value()
	}

	return len(data)
}

func (f *rollingFilter) Reset() {
	if f.window != nil {
		f.window.Reset()
	}
}

type downsamplingFilter struct {
	d *downsample.Downsampler
}

func (f *downsamplingFilter) Process(data []float64) int { return f.d.Process(data) }
func (f *downsamplingFilter) Reset()                     { f.d.Reset() }

func familyOf(t FilterType) (iir.Family, bool) {
	switch t {
	case Butterworth, ButterworthZeroPhase:
		return iir.Butterworth, true
	case ChebyshevType1, ChebyshevType1ZeroPhase:
		return iir.ChebyshevI, true
	case Bessel, BesselZeroPhase:
		return iir.Bessel, true
	default:
		return 0, false
	}
}

// designChain validates the arguments the way the streaming constructors
// report them and designs the cascade. zeroPhase admits the forward-backward
// filter types for the batch functions.
func designChain(band iir.Band, samplingRate int, freq, width float64, order int, filterType FilterType, ripple float64, zeroPhase bool) (*biquad.Chain, error) {
	fields := logrus.Fields{
		"band":          band.String(),
		"sampling_rate": samplingRate,
		"order":         order,
		"filter_type":   int(filterType),
	}

	if order < 1 || order > MaxFilterOrder {
		return nil, reject(fields, invalidArgs("order must be from 1-%d, got %d", MaxFilterOrder, order))
	}

	family, ok := familyOf(filterType)
	if !ok {
		return nil, reject(fields, invalidArgs("invalid filter type %d", int(filterType)))
	}

	if filterType.ZeroPhase() && !zeroPhase {
		return nil, reject(fields, invalidArgs("filter type %s is only supported by batch filtering", filterType))
	}

	if samplingRate <= 0 {
		return nil, reject(fields, invalidArgs("invalid sampling rate %d", samplingRate))
	}

	chain, err := iir.Design(iir.Spec{
		Family:     family,
		Band:       band,
		Order:      order,
		SampleRate: float64(samplingRate),
		Freq:       freq,
		Width:      width,
		RippleDB:   ripple,
	})
	if err != nil {
		var e *Error
		errors.As(translate(err), &e)
		fields["freq"] = freq
		fields["width"] = width
		fields["ripple"] = ripple

		return nil, reject(fields, e)
	}

	return chain, nil
}

// NewLowpass returns a streaming low-pass filter.
func NewLowpass(samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) (Filter, error) {
	c, err := designChain(iir.Lowpass, samplingRate, cutoff, 0, order, filterType, ripple, false)
	if err != nil {
		return nil, err
	}

	return &iirFilter{chains: []*biquad.Chain{c}}, nil
}

// NewHighpass returns a streaming high-pass filter.
func NewHighpass(samplingRate int, cutoff float64, order int, filterType FilterType, ripple float64) (Filter, error) {
	c, err := designChain(iir.Highpass, samplingRate, cutoff, 0, order, filterType, ripple, false)
	if err != nil {
		return nil, err
	}

	return &iirFilter{chains: []*biquad.Chain{c}}, nil
}

// NewBandpass returns a streaming band-pass filter passing
// centerFreq ± bandWidth/2.
func NewBandpass(samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) (Filter, error) {
	c, err := designChain(iir.Bandpass, samplingRate, centerFreq, bandWidth, order, filterType, ripple, false)
	if err != nil {
		return nil, err
	}

	return &iirFilter{chains: []*biquad.Chain{c}}, nil
}

// NewBandstop returns a streaming band-stop filter rejecting
// centerFreq ± bandWidth/2.
func NewBandstop(samplingRate int, centerFreq, bandWidth float64, order int, filterType FilterType, ripple float64) (Filter, error) {
	c, err := designChain(iir.Bandstop, samplingRate, centerFreq, bandWidth, order, filterType, ripple, false)
	if err != nil {
		return nil, err
	}

	return &iirFilter{chains: []*biquad.Chain{c}}, nil
}

// Environmental noise is removed with a 4th-order Butterworth band-stop,
// 4 Hz wide, at each mains frequency.
const (
	noiseOrder     = 4
	noiseBandWidth = 4.0
)

func mainsFrequencies(n NoiseType) []float64 {
	switch n {
	case Fifty:
		return []float64{50}
	case Sixty:
		return []float64{60}
	case FiftyAndSixty:
		return []float64{50, 60}
	default:
		return nil
	}
}

// NewEnvironmentalNoise returns a filter removing mains interference.
func NewEnvironmentalNoise(samplingRate int, noiseType NoiseType) (Filter, error) {
	fields := logrus.Fields{"sampling_rate": samplingRate, "noise_type": int(noiseType)}

	if samplingRate < 1 {
		return nil, reject(fields, invalidArgs("invalid sampling rate %d", samplingRate))
	}

	freqs := mainsFrequencies(noiseType)
	if freqs == nil {
		return nil, reject(fields, invalidArgs("invalid noise type %d", int(noiseType)))
	}

	f := &iirFilter{}
	for _, freq := range freqs {
		c, err := designChain(iir.Bandstop, samplingRate, freq, noiseBandWidth, noiseOrder, Butterworth, 0, false)
		if err != nil {
			return nil, err
		}

		f.chains = append(f.chains, c)
	}

	return f, nil
}

func newWindow(period int, op AggOperation) (rolling.Window, error) {
	switch op {
	case Mean:
		return rolling.NewMean(period)
	case Median:
		return rolling.NewMedian(period)
	default:
		return nil, nil
	}
}

func checkAggregate(period int, op AggOperation) error {
	fields := logrus.Fields{"period": period, "agg_operation": int(op)}

	if period < 1 {
		return reject(fields, invalidArgs("period must be >= 1, got %d", period))
	}

	if op < Mean || op > Each {
		return reject(fields, invalidArgs("invalid aggregate operation %d", int(op)))
	}

	return nil
}

// NewRolling returns a rolling mean or median filter over the last period
// samples. Each passes samples through unchanged.
func NewRolling(period int, op AggOperation) (Filter, error) {
	if err := checkAggregate(period, op); err != nil {
		return nil, err
	}

	w, err := newWindow(period, op)
	if err != nil {
		return nil, translate(err)
	}

	return &rollingFilter{window: w}, nil
}

// NewDownsampling returns a filter emitting one aggregate per period input
// samples. Each keeps the last sample of every group.
func NewDownsampling(period int, op AggOperation) (Filter, error) {
	if err := checkAggregate(period, op); err != nil {
		return nil, err
	}

	if op == Each {
		d, err := downsample.NewEach(period)
		if err != nil {
			return nil, translate(err)
		}

		return &downsamplingFilter{d: d}, nil
	}

	w, err := newWindow(period, op)
	if err != nil {
		return nil, translate(err)
	}

	return &downsamplingFilter{d: downsample.New(w)}, nil
}
