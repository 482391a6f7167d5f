// Package delay provides a fixed-size circular sample line that remembers
// insertion order. The rolling operators use it as their FIFO.
package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned by New for a non-positive size.
var ErrInvalidSize = errors.New("delay: size must be > 0")

// Line is a circular delay line holding up to Cap samples.
type Line struct {
	buffer   []float64
	writePos int
	count    int
}

// New returns an empty delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	return &Line{buffer: make([]float64, size)}, nil
}

// Cap returns the buffer size.
func (d *Line) Cap() int {
	return len(d.buffer)
}

// Len returns the number of samples written since the last Reset, capped at Cap.
func (d *Line) Len() int {
	return d.count
}

// Full reports whether the next Push evicts a sample.
func (d *Line) Full() bool {
	return d.count == len(d.buffer)
}

// Push writes one sample. When the line is full the oldest sample is
// overwritten and returned with evicted set.
func (d *Line) Push(sample float64) (old float64, evicted bool) {
	if d.count == len(d.buffer) {
		old, evicted = d.buffer[d.writePos], true
	} else {
		d.count++
	}

	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}

	return old, evicted
}

// Read returns the sample written delay pushes ago; delay 1 is the most
// recent sample. Delays beyond Len read 0.
func (d *Line) Read(delay int) float64 {
	if delay < 1 || delay > d.count {
		return 0
	}

	size := len(d.buffer)
	return d.buffer[(d.writePos-delay+size)%size]
}

// Newest returns the most recently written sample, or 0 when empty.
func (d *Line) Newest() float64 {
	return d.Read(1)
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
	d.count = 0
}
