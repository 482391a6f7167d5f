package datafilter

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bioflow/internal/testutil"
	"github.com/cwbudde/algo-bioflow/stats/frequency"
)

// streamChunks feeds data through a registry handle in the given chunk sizes
// and concatenates the valid outputs.
func streamChunks(t *testing.T, r *Registry, id int, data []float64, sizes []int) []float64 {
	t.Helper()

	var out []float64
	pos := 0
	for _, size := range sizes {
		chunk := slices.Clone(data[pos : pos+size])
		pos += size

		n, err := r.Process(id, chunk)
		require.NoError(t, err)

		out = append(out, chunk[:n]...)
	}

	require.Equal(t, len(data), pos)

	return out
}

func equalChunks(n, size int) []int {
	sizes := make([]int, 0, n/size+1)
	for n > 0 {
		sizes = append(sizes, min(size, n))
		n -= size
	}

	return sizes
}

func TestLowpassBatchEqualsStreamingScenario(t *testing.T) {
	const fs = 250

	data := testutil.SyntheticEEG(7, fs, 1250)

	batch := slices.Clone(data)
	require.NoError(t, PerformLowpass(batch, fs, 30, 3, Butterworth, 0))

	r := NewRegistry()
	id, err := r.CreateLowpass(fs, 30, 3, Butterworth, 0)
	require.NoError(t, err)

	streamed := streamChunks(t, r, id, data, equalChunks(len(data), 250))

	diff, err := testutil.MaxAbsDiff(batch, streamed)
	require.NoError(t, err)
	require.LessOrEqual(t, diff, 1e-15)
}

func TestBatchEqualsStreamingForEveryKind(t *testing.T) {
	const fs = 250

	data := testutil.SyntheticEEG(11, fs, 1000)

	type tc struct {
		name   string
		params Params
		batch  func([]float64) ([]float64, error)
	}

	var cases []tc

	for _, ft := range streamingTypes {
		for _, order := range []int{1, 4, 8} {
			cases = append(cases,
				tc{fmt.Sprintf("lowpass/%s/%d", ft, order), Params{Kind: KindLowpass, SamplingRate: fs, Cutoff: 30, Order: order, FilterType: ft, Ripple: 1},
					func(d []float64) ([]float64, error) { return d, PerformLowpass(d, fs, 30, order, ft, 1) }},
				tc{fmt.Sprintf("highpass/%s/%d", ft, order), Params{Kind: KindHighpass, SamplingRate: fs, Cutoff: 2, Order: order, FilterType: ft, Ripple: 1},
					func(d []float64) ([]float64, error) { return d, PerformHighpass(d, fs, 2, order, ft, 1) }},
				tc{fmt.Sprintf("bandpass/%s/%d", ft, order), Params{Kind: KindBandpass, SamplingRate: fs, CenterFreq: 15, BandWidth: 10, Order: order, FilterType: ft, Ripple: 1},
					func(d []float64) ([]float64, error) { return d, PerformBandpass(d, fs, 15, 10, order, ft, 1) }},
				tc{fmt.Sprintf("bandstop/%s/%d", ft, order), Params{Kind: KindBandstop, SamplingRate: fs, CenterFreq: 50, BandWidth: 4, Order: order, FilterType: ft, Ripple: 1},
					func(d []float64) ([]float64, error) { return d, PerformBandstop(d, fs, 50, 4, order, ft, 1) }},
			)
		}
	}

	for _, n := range []NoiseType{Fifty, Sixty, FiftyAndSixty} {
		cases = append(cases, tc{"noise/" + n.String(), Params{Kind: KindEnvironmentalNoise, SamplingRate: fs, NoiseType: n},
			func(d []float64) ([]float64, error) { return d, RemoveEnvironmentalNoise(d, fs, n) }})
	}

	for _, op := range []AggOperation{Mean, Median, Each} {
		cases = append(cases,
			tc{"rolling/" + op.String(), Params{Kind: KindRolling, Period: 6, Operation: op},
				func(d []float64) ([]float64, error) { return d, PerformRollingFilter(d, 6, op) }},
			tc{"downsampling/" + op.String(), Params{Kind: KindDownsampling, Period: 6, Operation: op},
				func(d []float64) ([]float64, error) { return PerformDownsampling(d, 6, op) }},
		)
	}

	for i, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			want, err := c.batch(slices.Clone(data))
			require.NoError(t, err)

			r := NewRegistry()
			id, err := r.Create(c.params)
			require.NoError(t, err)

			got := streamChunks(t, r, id, data, testutil.Partition(int64(i), len(data), 97))

			diff, err := testutil.MaxAbsDiff(want, got)
			require.NoError(t, err)
			require.LessOrEqual(t, diff, 1e-15)
		})
	}
}

func TestEmptyDataRejected(t *testing.T) {
	for name, call := range map[string]func([]float64) error{
		"lowpass":   func(d []float64) error { return PerformLowpass(d, 250, 30, 2, Butterworth, 0) },
		"highpass":  func(d []float64) error { return PerformHighpass(d, 250, 30, 2, Butterworth, 0) },
		"bandpass":  func(d []float64) error { return PerformBandpass(d, 250, 20, 4, 2, Butterworth, 0) },
		"bandstop":  func(d []float64) error { return PerformBandstop(d, 250, 20, 4, 2, Butterworth, 0) },
		"noise":     func(d []float64) error { return RemoveEnvironmentalNoise(d, 250, Fifty) },
		"rolling":   func(d []float64) error { return PerformRollingFilter(d, 3, Mean) },
		"detrend":   func(d []float64) error { return Detrend(d, Linear) },
		"downsample": func(d []float64) error {
			_, err := PerformDownsampling(d, 3, Mean)
			return err
		},
	} {
		require.ErrorIs(t, call(nil), ErrInvalidArguments, name)
		require.ErrorIs(t, call([]float64{}), ErrInvalidArguments, name)
	}
}

func TestBatchValidationLeavesDataUntouched(t *testing.T) {
	data := testutil.DeterministicNoise(3, 1, 64)
	orig := slices.Clone(data)

	require.ErrorIs(t, PerformLowpass(data, 250, 30, 9, Butterworth, 0), ErrInvalidArguments)
	require.ErrorIs(t, PerformBandpass(data, 250, 20, -1, 2, Bessel, 0), ErrInvalidArguments)
	require.ErrorIs(t, PerformRollingFilter(data, 0, Median), ErrInvalidArguments)
	require.Equal(t, orig, data)
}

func TestPerformDownsampling(t *testing.T) {
	data := testutil.DeterministicNoise(8, 5, 103)
	orig := slices.Clone(data)

	for _, period := range []int{1, 4, 10, 103, 200} {
		for _, op := range []AggOperation{Mean, Median, Each} {
			out, err := PerformDownsampling(data, period, op)
			require.NoError(t, err)
			require.Len(t, out, len(data)/period)

			for k, v := range out {
				group := data[k*period : (k+1)*period]

				var want float64
				switch op {
				case Mean:
					want, _ = stats.Mean(group)
				case Median:
					want, _ = stats.Median(group)
				case Each:
					want = group[len(group)-1]
				}

				require.InDelta(t, want, v, 1e-12, "period %d %s group %d", period, op, k)
			}
		}
	}

	require.Equal(t, orig, data)
}

func TestZeroPhaseIsSymmetric(t *testing.T) {
	const n = 1001

	data := make([]float64, n)
	for i := range data {
		x := float64(i-n/2) / 20
		data[i] = math.Exp(-x * x)
	}

	for _, ft := range []FilterType{ButterworthZeroPhase, ChebyshevType1ZeroPhase, BesselZeroPhase} {
		out := slices.Clone(data)
		require.NoError(t, PerformLowpass(out, 250, 30, 4, ft, 1))

		for i := range n / 2 {
			require.InDelta(t, out[i], out[n-1-i], 1e-9, "%s sample %d", ft, i)
		}

		// A causal pass delays the peak; the forward-backward pass does not.
		require.Equal(t, n/2, argmax(out), ft.String())
	}
}

func argmax(x []float64) int {
	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}

	return best
}

func TestRemoveEnvironmentalNoiseAttenuatesMains(t *testing.T) {
	const (
		fs     = 250
		warmup = 4096
		size   = 2048
	)

	data := testutil.DeterministicSine(50, fs, 1, warmup+size)
	alpha := testutil.DeterministicSine(10, fs, 1, warmup+size)
	for i := range data {
		data[i] += alpha[i]
	}

	before, err := frequency.PSD(data[warmup:], fs, frequency.Hanning)
	require.NoError(t, err)

	require.NoError(t, RemoveEnvironmentalNoise(data, fs, Fifty))

	after, err := frequency.PSD(data[warmup:], fs, frequency.Hanning)
	require.NoError(t, err)

	mainsBefore, err := frequency.BandPower(before, 49, 51)
	require.NoError(t, err)

	mainsAfter, err := frequency.BandPower(after, 49, 51)
	require.NoError(t, err)

	require.Greater(t, 10*math.Log10(mainsBefore/mainsAfter), 40.0)

	alphaBefore, err := frequency.BandPower(before, 9, 11)
	require.NoError(t, err)

	alphaAfter, err := frequency.BandPower(after, 9, 11)
	require.NoError(t, err)

	require.InDelta(t, 1, alphaAfter/alphaBefore, 0.01)
}

func TestRemoveEnvironmentalNoiseByNoiseType(t *testing.T) {
	const (
		fs     = 250
		warmup = 2500
		size   = 1000
	)

	cases := []struct {
		noise        NoiseType
		fifty, sixty bool
	}{
		{Fifty, true, false},
		{Sixty, false, true},
		{FiftyAndSixty, true, true},
	}

	for _, tc := range cases {
		t.Run(tc.noise.String(), func(t *testing.T) {
			data := make([]float64, warmup+size)
			for _, f := range []float64{10, 50, 60} {
				tone := testutil.DeterministicSine(f, fs, 1, len(data))
				for i := range data {
					data[i] += tone[i]
				}
			}

			require.NoError(t, RemoveEnvironmentalNoise(data, fs, tc.noise))

			tail := data[warmup:]
			for _, want := range []struct {
				freq    float64
				removed bool
			}{{10, false}, {50, tc.fifty}, {60, tc.sixty}} {
				amp, err := frequency.ToneAmplitude(tail, want.freq, fs)
				require.NoError(t, err)

				if want.removed {
					require.Less(t, amp, 0.01, "%g Hz", want.freq)
				} else {
					require.InDelta(t, 1, amp, 0.02, "%g Hz", want.freq)
				}
			}
		})
	}
}
