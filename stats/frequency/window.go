package frequency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mjibson/go-dsp/window"
)

// WindowType selects the taper applied before the FFT.
type WindowType int

const (
	NoWindow WindowType = iota
	Hanning
	Hamming
	BlackmanHarris
)

var (
	// ErrInvalidWindow is returned for an unknown WindowType.
	ErrInvalidWindow = errors.New("frequency: invalid window type")
	// ErrInvalidLength is returned when a window or signal length is unusable.
	ErrInvalidLength = errors.New("frequency: invalid length")
)

var windowNames = [...]string{"no_window", "hanning", "hamming", "blackman_harris"}

func (w WindowType) String() string {
	if w < 0 || int(w) >= len(windowNames) {
		return fmt.Sprintf("WindowType(%d)", int(w))
	}

	return windowNames[w]
}

// ParseWindowType converts a configuration name such as "hanning" into a
// WindowType. Matching ignores case.
func ParseWindowType(s string) (WindowType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range windowNames {
		if s == name {
			return WindowType(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidWindow, s)
}

// Window returns the n-point symmetric window of the given type.
func Window(w WindowType, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	switch w {
	case NoWindow:
		return window.Rectangular(n), nil
	case Hanning:
		return window.Hann(n), nil
	case Hamming:
		return window.Hamming(n), nil
	case BlackmanHarris:
		return blackmanHarris(n), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, int(w))
	}
}

// blackmanHarris is the 4-term minimum side-lobe window, which go-dsp does
// not provide.
func blackmanHarris(n int) []float64 {
	r := make([]float64, n)
	if n == 1 {
		r[0] = 1
		return r
	}

	coef := 2 * math.Pi / float64(n-1)
	for i := range r {
		x := coef * float64(i)
		r[i] = 0.35875 - 0.48829*math.Cos(x) + 0.14128*math.Cos(2*x) - 0.01168*math.Cos(3*x)
	}

	return r
}
