package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(10, 250, 1.0, 50)
	if len(s) != 50 {
		t.Fatalf("len = %d, want 50", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}
	if out := Impulse(4, 9); out[0] != 0 || len(out) != 4 {
		t.Fatalf("out-of-range impulse: %v", out)
	}
}

func TestSyntheticEEG(t *testing.T) {
	a := SyntheticEEG(1, 250, 1250)
	b := SyntheticEEG(1, 250, 1250)
	if len(a) != 1250 {
		t.Fatalf("len = %d, want 1250", len(a))
	}
	RequireFinite(t, a)
	RequireSliceNearlyEqual(t, a, b, 0)
	for i, v := range a {
		if math.Abs(v) > 52 {
			t.Fatalf("a[%d] = %v exceeds component sum", i, v)
		}
	}
}

func TestPartition(t *testing.T) {
	for _, n := range []int{1, 17, 1250} {
		sizes := Partition(int64(n), n, 64)
		sum := 0
		for _, s := range sizes {
			if s < 1 || s > 64 {
				t.Fatalf("n=%d: chunk size %d out of range", n, s)
			}
			sum += s
		}
		if sum != n {
			t.Fatalf("n=%d: sizes sum to %d", n, sum)
		}
	}
}
