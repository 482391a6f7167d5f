package datafilter

import (
	"fmt"
	"strings"
)

// FilterType selects the IIR family. The zero-phase variants run the filter
// forward and backward and are only accepted by the batch functions.
type FilterType int

const (
	Butterworth FilterType = iota
	ChebyshevType1
	Bessel
	ButterworthZeroPhase
	ChebyshevType1ZeroPhase
	BesselZeroPhase
)

// AggOperation selects the aggregate of rolling and downsampling filters.
type AggOperation int

const (
	Mean AggOperation = iota
	Median
	Each
)

// NoiseType selects the mains frequency removed by the environmental noise
// filter.
type NoiseType int

const (
	Fifty NoiseType = iota
	Sixty
	FiftyAndSixty
)

// DetrendOperation selects what Detrend subtracts.
type DetrendOperation int

const (
	NoDetrend DetrendOperation = iota
	Constant
	Linear
)

var (
	filterTypeNames   = []string{"butterworth", "chebyshev_type_1", "bessel", "butterworth_zero_phase", "chebyshev_type_1_zero_phase", "bessel_zero_phase"}
	aggOperationNames = []string{"mean", "median", "each"}
	noiseTypeNames    = []string{"fifty", "sixty", "fifty_and_sixty"}
	detrendNames      = []string{"no_detrend", "constant", "linear"}
)

func enumName(names []string, v int, typ string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", typ, v)
	}

	return names[v]
}

func parseEnum(names []string, s, typ string) (int, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}

	return 0, invalidArgs("unknown %s %q", typ, s)
}

func (t FilterType) String() string   { return enumName(filterTypeNames, int(t), "FilterType") }
func (a AggOperation) String() string { return enumName(aggOperationNames, int(a), "AggOperation") }
func (n NoiseType) String() string    { return enumName(noiseTypeNames, int(n), "NoiseType") }

func (d DetrendOperation) String() string {
	return enumName(detrendNames, int(d), "DetrendOperation")
}

// ZeroPhase reports whether t is one of the forward-backward variants.
func (t FilterType) ZeroPhase() bool {
	return t >= ButterworthZeroPhase && t <= BesselZeroPhase
}

// ParseFilterType converts a name as printed by FilterType.String.
func ParseFilterType(s string) (FilterType, error) {
	v, err := parseEnum(filterTypeNames, s, "filter type")
	return FilterType(v), err
}

// ParseAggOperation converts a name as printed by AggOperation.String.
func ParseAggOperation(s string) (AggOperation, error) {
	v, err := parseEnum(aggOperationNames, s, "aggregate operation")
	return AggOperation(v), err
}

// ParseNoiseType converts a name as printed by NoiseType.String.
func ParseNoiseType(s string) (NoiseType, error) {
	v, err := parseEnum(noiseTypeNames, s, "noise type")
	return NoiseType(v), err
}

// ParseDetrendOperation converts a name as printed by DetrendOperation.String.
func ParseDetrendOperation(s string) (DetrendOperation, error) {
	v, err := parseEnum(detrendNames, s, "detrend operation")
	return DetrendOperation(v), err
}
