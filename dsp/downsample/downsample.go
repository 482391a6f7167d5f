// Package downsample decimates a sample stream by a fixed period, emitting
// one aggregate per group of period samples.
package downsample

import (
	"fmt"

	"github.com/cwbudde/algo-bioflow/dsp/rolling"
)

// Downsampler emits one value per completed group of Period input samples.
// A partial trailing group stays buffered across calls, so processing a
// stream in chunks gives the same output as one call over the whole stream.
type Downsampler struct {
	window  rolling.Window
	period  int
	counter int
	last    float64
}

// New returns a downsampler that reports window.Value() at the end of each
// group. The window period is the decimation period.
func New(window rolling.Window) *Downsampler {
	return &Downsampler{window: window, period: window.Period()}
}

// NewEach returns a downsampler that keeps the last sample of each group.
func NewEach(period int) (*Downsampler, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: got %d", rolling.ErrInvalidPeriod, period)
	}

	return &Downsampler{period: period}, nil
}

// Period returns the decimation period.
func (d *Downsampler) Period() int { return d.period }

// Process consumes buf in order and writes the outputs to the front of buf.
// It returns the number of outputs written.
func (d *Downsampler) Process(buf []float64) int {
	out := 0

	for _, x := range buf {
		if d.window != nil {
			d.window.Add(x)
		}

		d.last = x
		d.counter++

		if d.counter == d.period {
			buf[out] = d.value()
			out++
			d.counter = 0
		}
	}

	return out
}

// Reset drops any buffered samples.
func (d *Downsampler) Reset() {
	if d.window != nil {
		d.window.Reset()
	}

	d.counter = 0
	d.last = 0
}

func (d *Downsampler) value() float64 {
	if d.window == nil {
		return d.last
	}

	return d.window.Value()
}
