package datafilter

import "fmt"

// Kind tags the variant held by Params.
type Kind int

const (
	KindLowpass Kind = iota
	KindHighpass
	KindBandpass
	KindBandstop
	KindEnvironmentalNoise
	KindRolling
	KindDownsampling
)

var kindNames = []string{"lowpass", "highpass", "bandpass", "bandstop", "environmental_noise", "rolling", "downsampling"}

func (k Kind) String() string { return enumName(kindNames, int(k), "Kind") }

// ParseKind converts a name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	v, err := parseEnum(kindNames, s, "filter kind")
	return Kind(v), err
}

// Params describes any filter New can build. Only the fields used by Kind
// are read:
//
//	KindLowpass, KindHighpass     SamplingRate Cutoff Order FilterType Ripple
//	KindBandpass, KindBandstop    SamplingRate CenterFreq BandWidth Order FilterType Ripple
//	KindEnvironmentalNoise        SamplingRate NoiseType
//	KindRolling, KindDownsampling Period Operation
type Params struct {
	Kind         Kind
	SamplingRate int
	Cutoff       float64
	CenterFreq   float64
	BandWidth    float64
	Order        int
	FilterType   FilterType
	Ripple       float64
	NoiseType    NoiseType
	Period       int
	Operation    AggOperation
}

func (p Params) String() string {
	switch p.Kind {
	case KindLowpass, KindHighpass:
		return fmt.Sprintf("%s(fs=%d, cutoff=%g, order=%d, %s)", p.Kind, p.SamplingRate, p.Cutoff, p.Order, p.FilterType)
	case KindBandpass, KindBandstop:
		return fmt.Sprintf("%s(fs=%d, center=%g, width=%g, order=%d, %s)", p.Kind, p.SamplingRate, p.CenterFreq, p.BandWidth, p.Order, p.FilterType)
	case KindEnvironmentalNoise:
		return fmt.Sprintf("%s(fs=%d, %s)", p.Kind, p.SamplingRate, p.NoiseType)
	default:
		return fmt.Sprintf("%s(period=%d, %s)", p.Kind, p.Period, p.Operation)
	}
}

// New builds the filter described by p.
func New(p Params) (Filter, error) {
	switch p.Kind {
	case KindLowpass:
		return NewLowpass(p.SamplingRate, p.Cutoff, p.Order, p.FilterType, p.Ripple)
	case KindHighpass:
		return NewHighpass(p.SamplingRate, p.Cutoff, p.Order, p.FilterType, p.Ripple)
	case KindBandpass:
		return NewBandpass(p.SamplingRate, p.CenterFreq, p.BandWidth, p.Order, p.FilterType, p.Ripple)
	case KindBandstop:
		return NewBandstop(p.SamplingRate, p.CenterFreq, p.BandWidth, p.Order, p.FilterType, p.Ripple)
	case KindEnvironmentalNoise:
		return NewEnvironmentalNoise(p.SamplingRate, p.NoiseType)
	case KindRolling:
		return NewRolling(p.Period, p.Operation)
	case KindDownsampling:
		return NewDownsampling(p.Period, p.Operation)
	default:
		return nil, invalidArgs("invalid filter kind %d", int(p.Kind))
	}
}
