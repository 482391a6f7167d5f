// Package testutil provides deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// SyntheticEEG generates one channel of EEG-like data in microvolts: alpha
// and beta rhythms, a slow drift, 50 Hz mains hum and white noise. The same
// seed always yields the same samples.
func SyntheticEEG(seed int64, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = 20*math.Sin(2*math.Pi*10*t) +
			8*math.Sin(2*math.Pi*22*t+0.4) +
			5*math.Sin(2*math.Pi*0.3*t) +
			15*math.Sin(2*math.Pi*50*t) +
			4*(rng.Float64()*2-1)
	}
	return out
}

// Partition splits n samples into random non-empty chunk lengths of at most
// maxChunk that sum to n.
func Partition(seed int64, n, maxChunk int) []int {
	rng := rand.New(rand.NewSource(seed))
	var sizes []int
	for n > 0 {
		size := min(1+rng.Intn(maxChunk), n)
		sizes = append(sizes, size)
		n -= size
	}
	return sizes
}
