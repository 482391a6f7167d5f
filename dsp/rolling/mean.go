package rolling

import (
	"math"

	"github.com/cwbudde/algo-bioflow/dsp/delay"
)

// Mean is a running average over the last Period samples. NaN samples are
// kept out of the running sum, and Value reports NaN while one is inside the
// window.
type Mean struct {
	line *delay.Line
	sum  float64
	nans int
}

var _ Window = (*Mean)(nil)

// NewMean returns an empty rolling mean.
func NewMean(period int) (*Mean, error) {
	line, err := newLine(period)
	if err != nil {
		return nil, err
	}

	return &Mean{line: line}, nil
}

func (m *Mean) Add(x float64) {
	if old, evicted := m.line.Push(x); evicted {
		if math.IsNaN(old) {
			m.nans--
		} else {
			m.sum -= old
		}
	}

	if math.IsNaN(x) {
		m.nans++
		return
	}

	m.sum += x
}

// Value returns sum / min(count, period), or 0 when empty.
func (m *Mean) Value() float64 {
	n := m.line.Len()
	if n == 0 {
		return 0
	}

	if m.nans > 0 {
		return math.NaN()
	}

	return m.sum / float64(n)
}

func (m *Mean) Len() int    { return m.line.Len() }
func (m *Mean) Period() int { return m.line.Cap() }

func (m *Mean) Reset() {
	m.line.Reset()
	m.sum = 0
	m.nans = 0
}
