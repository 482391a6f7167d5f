package iir

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-bioflow/dsp/filter/biquad"
)

// MaxOrder is the highest prototype order Design accepts.
const MaxOrder = 8

var (
	ErrInvalidOrder      = errors.New("iir: order must be from 1-8")
	ErrInvalidFamily     = errors.New("iir: invalid filter family")
	ErrInvalidBand       = errors.New("iir: invalid band type")
	ErrInvalidSampleRate = errors.New("iir: sample rate must be positive")
	ErrInvalidFrequency  = errors.New("iir: frequency out of range")
	ErrInvalidRipple     = errors.New("iir: ripple must be positive")
)

// Family selects the analog prototype.
type Family int

const (
	Butterworth Family = iota
	ChebyshevI
	Bessel
)

func (f Family) String() string {
	switch f {
	case Butterworth:
		return "butterworth"
	case ChebyshevI:
		return "chebyshev1"
	case Bessel:
		return "bessel"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// Band selects the frequency transform applied to the prototype.
type Band int

const (
	Lowpass Band = iota
	Highpass
	Bandpass
	Bandstop
)

func (b Band) String() string {
	switch b {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	case Bandpass:
		return "bandpass"
	case Bandstop:
		return "bandstop"
	default:
		return fmt.Sprintf("Band(%d)", int(b))
	}
}

// Spec describes one filter design.
//
// Freq is the cutoff for Lowpass and Highpass and the center frequency for
// Bandpass and Bandstop, whose edges are Freq ± Width/2. RippleDB is only
// read for ChebyshevI.
type Spec struct {
	Family     Family
	Band       Band
	Order      int
	SampleRate float64
	Freq       float64
	Width      float64
	RippleDB   float64
}

// Validate reports whether s describes a realizable filter without designing it.
func (s Spec) Validate() error {
	if s.Order < 1 || s.Order > MaxOrder {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, s.Order)
	}

	switch s.Family {
	case Butterworth, Bessel:
	case ChebyshevI:
		if !(s.RippleDB > 0) || math.IsInf(s.RippleDB, 0) {
			return fmt.Errorf("%w: got %g dB", ErrInvalidRipple, s.RippleDB)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidFamily, s.Family)
	}

	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidSampleRate, s.SampleRate)
	}

	nyquist := s.SampleRate / 2

	switch s.Band {
	case Lowpass, Highpass:
		if !(s.Freq > 0 && s.Freq < nyquist) {
			return fmt.Errorf("%w: cutoff %g Hz not in (0, %g)", ErrInvalidFrequency, s.Freq, nyquist)
		}
	case Bandpass, Bandstop:
		if !(s.Width > 0) {
			return fmt.Errorf("%w: band width %g Hz", ErrInvalidFrequency, s.Width)
		}

		lo, hi := s.edges()
		if !(lo > 0 && hi < nyquist) {
			return fmt.Errorf("%w: band [%g, %g] Hz not in (0, %g)", ErrInvalidFrequency, lo, hi, nyquist)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidBand, s.Band)
	}

	return nil
}

func (s Spec) edges() (float64, float64) {
	return s.Freq - s.Width/2, s.Freq + s.Width/2
}

// Sections returns the normalized biquad sections of the design and the
// overall gain the cascade must apply to hit the reference level.
func Sections(s Spec) ([]biquad.Coefficients, float64, error) {
	if err := s.Validate(); err != nil {
		return nil, 0, err
	}

	poles := prototype(s.Family, s.Order, s.RippleDB)

	var (
		sections []biquad.Coefficients
		ref      complex128
	)

	switch s.Band {
	case Lowpass:
		sections = lowpass(poles, prewarp(s.Freq, s.SampleRate))
		ref = 1
	case Highpass:
		sections = highpass(poles, prewarp(s.Freq, s.SampleRate))
		ref = -1
	case Bandpass, Bandstop:
		lo, hi := s.edges()
		wl := prewarp(lo, s.SampleRate)
		wh := prewarp(hi, s.SampleRate)
		w0 := math.Sqrt(wl * wh)

		if s.Band == Bandpass {
			sections = bandpass(poles, w0, wh-wl)
			theta := 2 * math.Atan(w0)
			ref = complex(math.Cos(theta), math.Sin(theta))
		} else {
			sections = bandstop(poles, w0, wh-wl)
			ref = 1
		}
	}

	for i := range sections {
		normalize(&sections[i], ref)
	}

	return sections, referenceGain(s), nil
}

// Design returns a ready-to-run cascade with zero state.
func Design(s Spec) (*biquad.Chain, error) {
	sections, gain, err := Sections(s)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(sections, biquad.WithGain(gain)), nil
}

// referenceGain is the magnitude the cascade has at its reference point:
// the prototype DC gain, which for an even-order Chebyshev Type I sits at the
// bottom of the ripple band.
func referenceGain(s Spec) float64 {
	if s.Family == ChebyshevI && s.Order%2 == 0 {
		return math.Pow(10, -s.RippleDB/20)
	}

	return 1
}

// ReferenceFrequency returns the frequency at which the design is
// gain-normalized: DC for lowpass and bandstop, Nyquist for highpass and
// CenterFrequency for bandpass.
func ReferenceFrequency(s Spec) float64 {
	switch s.Band {
	case Highpass:
		return s.SampleRate / 2
	case Bandpass:
		return CenterFrequency(s)
	default:
		return 0
	}
}

// CenterFrequency returns the digital frequency the band designs are
// centered on: the image of the geometric mean of the prewarped band edges.
// It sits slightly below Freq, and it is where a bandstop places its zeros.
func CenterFrequency(s Spec) float64 {
	lo, hi := s.edges()
	w0 := math.Sqrt(prewarp(lo, s.SampleRate) * prewarp(hi, s.SampleRate))

	return s.SampleRate * math.Atan(w0) / math.Pi
}
