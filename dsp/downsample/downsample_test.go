package downsample

import (
	"errors"
	"math"
	"testing"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-bioflow/dsp/rolling"
	"github.com/cwbudde/algo-bioflow/internal/testutil"
)

func newMean(t *testing.T, period int) *Downsampler {
	t.Helper()

	w, err := rolling.NewMean(period)
	if err != nil {
		t.Fatal(err)
	}

	return New(w)
}

func newMedian(t *testing.T, period int) *Downsampler {
	t.Helper()

	w, err := rolling.NewMedian(period)
	if err != nil {
		t.Fatal(err)
	}

	return New(w)
}

func TestNewEachInvalidPeriod(t *testing.T) {
	if _, err := NewEach(0); !errors.Is(err, rolling.ErrInvalidPeriod) {
		t.Fatalf("got %v, want ErrInvalidPeriod", err)
	}
}

func TestGroupAggregates(t *testing.T) {
	data := testutil.DeterministicNoise(3, 10, 103)
	const period = 5

	tests := []struct {
		name string
		d    *Downsampler
		agg  func([]float64) float64
	}{
		{"mean", newMean(t, period), func(g []float64) float64 { m, _ := stats.Mean(g); return m }},
		{"median", newMedian(t, period), func(g []float64) float64 { m, _ := stats.Median(g); return m }},
		{"each", mustEach(t, period), func(g []float64) float64 { return g[len(g)-1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := append([]float64(nil), data...)
			n := tt.d.Process(buf)

			if n != len(data)/period {
				t.Fatalf("outputs: got %d want %d", n, len(data)/period)
			}

			for k := range n {
				want := tt.agg(data[k*period : (k+1)*period])
				if math.Abs(buf[k]-want) > 1e-12 {
					t.Fatalf("group %d: got %v want %v", k, buf[k], want)
				}
			}

			// the trailing partial group completes after the missing samples
			rest := data[n*period:]
			group := append(append([]float64(nil), rest...), make([]float64, period-len(rest))...)
			want := tt.agg(group)

			fill := append([]float64(nil), group[len(rest):]...)
			if k := tt.d.Process(fill); k != 1 || math.Abs(fill[0]-want) > 1e-12 {
				t.Fatalf("trailing group: n=%d got %v want %v", k, fill[0], want)
			}
		})
	}
}

func mustEach(t *testing.T, period int) *Downsampler {
	t.Helper()

	d, err := NewEach(period)
	if err != nil {
		t.Fatal(err)
	}

	return d
}

func TestChunkedMatchesWhole(t *testing.T) {
	data := testutil.DeterministicNoise(9, 1, 997)
	const period = 7

	whole := append([]float64(nil), data...)
	n := newMedian(t, period).Process(whole)
	whole = whole[:n]

	d := newMedian(t, period)
	var got []float64
	pos := 0
	for _, size := range testutil.Partition(11, len(data), 20) {
		chunk := append([]float64(nil), data[pos:pos+size]...)
		want := (pos+size)/period - pos/period
		pos += size

		k := d.Process(chunk)
		if k != want {
			t.Fatalf("outputs: got %d want %d", k, want)
		}

		got = append(got, chunk[:k]...)
	}

	testutil.RequireSliceNearlyEqual(t, got, whole, 0)
}

func TestShortInputEmitsNothing(t *testing.T) {
	d := newMean(t, 4)
	buf := []float64{1, 2, 3}

	if n := d.Process(buf); n != 0 {
		t.Fatalf("outputs: got %d want 0", n)
	}

	buf = []float64{5}
	if n := d.Process(buf); n != 1 || buf[0] != 2.75 {
		t.Fatalf("completed group: n=%d value=%v", n, buf[0])
	}
}

func TestReset(t *testing.T) {
	d := newMean(t, 3)
	d.Process([]float64{10, 10})
	d.Reset()

	buf := []float64{1, 2, 3}
	if n := d.Process(buf); n != 1 || buf[0] != 2 {
		t.Fatalf("after Reset: n=%d value=%v", n, buf[0])
	}
}
