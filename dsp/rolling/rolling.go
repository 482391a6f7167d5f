// Package rolling implements sliding-window aggregates over a sample stream.
//
// A window holds at most Period samples in insertion order. Mean reports
// the average of the samples it holds; Median reports the most recent sample
// until the window has filled once and the median of the window afterwards.
package rolling

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-bioflow/dsp/delay"
)

// ErrInvalidPeriod is returned for a period below 1.
var ErrInvalidPeriod = errors.New("rolling: period must be >= 1")

// Window is a stateful sliding-window aggregate.
type Window interface {
	// Add inserts x, evicting the oldest sample once more than Period
	// samples would be held.
	Add(x float64)
	// Value returns the current aggregate.
	Value() float64
	// Len returns the number of samples held.
	Len() int
	// Period returns the window length.
	Period() int
	// Reset empties the window.
	Reset()
}

func newLine(period int) (*delay.Line, error) {
	if period < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPeriod, period)
	}

	return delay.New(period)
}
