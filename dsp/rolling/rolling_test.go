package rolling

import (
	"errors"
	"math"
	"testing"

	"github.com/montanaflynn/stats"

	"github.com/cwbudde/algo-bioflow/internal/testutil"
)

func TestInvalidPeriod(t *testing.T) {
	for _, p := range []int{0, -3} {
		if _, err := NewMean(p); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("NewMean(%d): got %v", p, err)
		}

		if _, err := NewMedian(p); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("NewMedian(%d): got %v", p, err)
		}
	}
}

func TestMeanMatchesWindowAverage(t *testing.T) {
	data := testutil.DeterministicSine(7, 250, 1.5, 500)

	for _, period := range []int{1, 2, 5, 16, 63} {
		m, err := NewMean(period)
		if err != nil {
			t.Fatal(err)
		}

		for i, x := range data {
			m.Add(x)

			lo := max(0, i+1-period)
			want, err := stats.Mean(data[lo : i+1])
			if err != nil {
				t.Fatal(err)
			}

			if got := m.Value(); math.Abs(got-want) > 1e-9 {
				t.Fatalf("period %d sample %d: got %v want %v", period, i, got, want)
			}
		}

		if m.Len() != min(period, len(data)) || m.Period() != period {
			t.Fatalf("period %d: Len %d Period %d", period, m.Len(), m.Period())
		}
	}
}

func TestMedianMatchesSlidingMedian(t *testing.T) {
	data := testutil.DeterministicNoise(42, 1, 400)
	// Duplicates exercise eviction of values equal to a heap top.
	for i := 0; i < len(data); i += 7 {
		data[i] = 0.25
	}

	for _, period := range []int{1, 2, 3, 4, 9, 10, 31} {
		m, err := NewMedian(period)
		if err != nil {
			t.Fatal(err)
		}

		for i, x := range data {
			m.Add(x)

			if i+1 < period {
				if got := m.Value(); got != x {
					t.Fatalf("period %d filling sample %d: got %v want last value %v", period, i, got, x)
				}

				continue
			}

			want, err := stats.Median(data[i+1-period : i+1])
			if err != nil {
				t.Fatal(err)
			}

			if got := m.Value(); math.Abs(got-want) > 1e-15 {
				t.Fatalf("period %d sample %d: got %v want %v", period, i, got, want)
			}
		}
	}
}

func TestMedianSmallScenario(t *testing.T) {
	m, err := NewMedian(3)
	if err != nil {
		t.Fatal(err)
	}

	in := []float64{5, 1, 9, 3, 3, 8, 0}
	want := []float64{5, 1, 5, 3, 3, 3, 3}

	for i, x := range in {
		m.Add(x)
		if got := m.Value(); got != want[i] {
			t.Fatalf("step %d: got %v want %v", i, got, want[i])
		}
	}
}

func TestNaNLeavesWindowWithEviction(t *testing.T) {
	nan := math.NaN()
	in := []float64{1, 2, 3, nan, 5, 6, 7, 8, nan, nan, 2, 4, 9}

	mean, err := NewMean(3)
	if err != nil {
		t.Fatal(err)
	}

	median, err := NewMedian(3)
	if err != nil {
		t.Fatal(err)
	}

	for i, x := range in {
		mean.Add(x)
		median.Add(x)

		if i < 2 {
			continue
		}

		window := in[i-2 : i+1]
		hasNaN := false
		for _, v := range window {
			hasNaN = hasNaN || math.IsNaN(v)
		}

		if hasNaN {
			if !math.IsNaN(mean.Value()) || !math.IsNaN(median.Value()) {
				t.Fatalf("step %d: window %v: got mean %v median %v, want NaN", i, window, mean.Value(), median.Value())
			}

			continue
		}

		wantMean, _ := stats.Mean(window)
		wantMedian, _ := stats.Median(window)

		if math.Abs(mean.Value()-wantMean) > 1e-12 {
			t.Fatalf("step %d: mean got %v want %v", i, mean.Value(), wantMean)
		}

		if median.Value() != wantMedian {
			t.Fatalf("step %d: median got %v want %v", i, median.Value(), wantMedian)
		}
	}
}

func TestEmptyAndReset(t *testing.T) {
	windows := []Window{}

	mean, err := NewMean(4)
	if err != nil {
		t.Fatal(err)
	}

	median, err := NewMedian(4)
	if err != nil {
		t.Fatal(err)
	}

	windows = append(windows, mean, median)

	for _, w := range windows {
		if w.Value() != 0 {
			t.Fatalf("%T: empty value %v", w, w.Value())
		}

		for _, x := range []float64{1, 2, 3, 4, 5} {
			w.Add(x)
		}

		w.Reset()
		if w.Len() != 0 || w.Value() != 0 {
			t.Fatalf("%T: after Reset len %d value %v", w, w.Len(), w.Value())
		}

		w.Add(7)
		if w.Value() != 7 {
			t.Fatalf("%T: value after Reset+Add: %v", w, w.Value())
		}
	}
}

func BenchmarkMedianAdd(b *testing.B) {
	m, err := NewMedian(125)
	if err != nil {
		b.Fatal(err)
	}

	data := testutil.DeterministicNoise(1, 1, 4096)

	b.ReportAllocs()

	for b.Loop() {
		for _, x := range data {
			m.Add(x)
		}
	}
}
