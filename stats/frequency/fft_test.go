package frequency

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFFTMatchesReferenceFFT(t *testing.T) {
	data := sine(7, 100, 100)
	for i := range data {
		data[i] += 0.3*math.Cos(float64(i)*0.91) - 0.2
	}

	got, err := FFT(data, Hanning)
	require.NoError(t, err)
	require.Len(t, got, 51)

	win, err := Window(Hanning, len(data))
	require.NoError(t, err)

	windowed := make([]float64, len(data))
	for i := range data {
		windowed[i] = data[i] * win[i]
	}

	want := fft.FFTReal(windowed)
	for k := range got {
		assert.InDelta(t, 0, cmplx.Abs(got[k]-want[k]), 1e-9, "bin %d", k)
	}
}

func TestFFTRoundTrip(t *testing.T) {
	for _, n := range []int{4, 6, 64, 250} {
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Sin(float64(i)*0.3) + float64(i%5)
		}

		spectrum, err := FFT(data, NoWindow)
		require.NoError(t, err)
		require.Len(t, spectrum, n/2+1)

		back, err := IFFT(spectrum)
		require.NoError(t, err)
		require.Len(t, back, n)
		assert.InDeltaSlice(t, data, back, 1e-9, "n=%d", n)
	}
}

func TestIFFTIgnoresImaginaryEdgeBins(t *testing.T) {
	spectrum := []complex128{complex(4, 0.5), complex(1, -1), complex(2, 3)}

	got, err := IFFT(spectrum)
	require.NoError(t, err)

	clean := []complex128{4, complex(1, -1), 2}
	want, err := IFFT(clean)
	require.NoError(t, err)
	assert.InDeltaSlice(t, want, got, 1e-12)
}

func TestFFTRejectsOddLength(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		_, err := FFT(make([]float64, n), NoWindow)
		assert.ErrorIs(t, err, ErrInvalidLength, "n=%d", n)
	}

	_, err := IFFT([]complex128{1})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestNearestPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		1: 1, 2: 2, 3: 4, 5: 4, 6: 8, 7: 8, 12: 16, 11: 8,
		100: 128, 96: 128, 95: 64, 500: 512, 1024: 1024,
	}

	for in, want := range cases {
		got, err := NearestPowerOfTwo(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "value %d", in)
	}

	_, err := NearestPowerOfTwo(0)
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = NearestPowerOfTwo(-4)
	assert.ErrorIs(t, err, ErrInvalidLength)
}
