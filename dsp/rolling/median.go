package rolling

import (
	"container/heap"
	"math"

	"github.com/cwbudde/algo-bioflow/dsp/delay"
)

// Median is a sliding median over the last Period samples.
//
// The window is kept as two heaps split at the median: low holds the
// smaller half as a max-heap, high the larger half as a min-heap. Evicted
// samples are only counted in pending and dropped once they surface at a
// heap top, so Add costs O(log period).
//
// NaN samples occupy a window slot but stay out of the heaps; while one is
// inside a full window Value reports NaN.
type Median struct {
	line *delay.Line

	low, high         maxHeap
	lowSize, highSize int
	pending           map[float64]int
	nans              int
}

var _ Window = (*Median)(nil)

// NewMedian returns an empty rolling median.
func NewMedian(period int) (*Median, error) {
	line, err := newLine(period)
	if err != nil {
		return nil, err
	}

	return &Median{
		line:    line,
		low:     maxHeap{sign: 1},
		high:    maxHeap{sign: -1},
		pending: make(map[float64]int),
	}, nil
}

func (m *Median) Add(x float64) {
	old, evicted := m.line.Push(x)

	switch {
	case math.IsNaN(x):
		m.nans++
	case m.lowSize == 0 || x <= m.low.top():
		heap.Push(&m.low, x)
		m.lowSize++
	default:
		heap.Push(&m.high, x)
		m.highSize++
	}

	if evicted {
		if math.IsNaN(old) {
			m.nans--
		} else {
			m.erase(old)
		}
	}

	m.balance()
}

// Value returns the most recent sample while the window is filling and the
// window median once it holds Period samples. An empty window reports 0.
func (m *Median) Value() float64 {
	if !m.line.Full() {
		return m.line.Newest()
	}

	if m.nans > 0 {
		return math.NaN()
	}

	if (m.lowSize+m.highSize)%2 == 1 {
		return m.low.top()
	}

	return (m.low.top() + m.high.top()) / 2
}

func (m *Median) Len() int    { return m.line.Len() }
func (m *Median) Period() int { return m.line.Cap() }

func (m *Median) Reset() {
	m.line.Reset()
	m.low.values = m.low.values[:0]
	m.high.values = m.high.values[:0]
	m.lowSize, m.highSize = 0, 0
	m.nans = 0
	clear(m.pending)
}

func (m *Median) erase(x float64) {
	m.pending[x]++

	if x <= m.low.top() {
		m.lowSize--
		if x == m.low.top() {
			m.prune(&m.low)
		}

		return
	}

	m.highSize--
	if x == m.high.top() {
		m.prune(&m.high)
	}
}

// balance keeps lowSize equal to highSize or one above it.
func (m *Median) balance() {
	switch {
	case m.lowSize > m.highSize+1:
		heap.Push(&m.high, heap.Pop(&m.low))
		m.lowSize--
		m.highSize++
		m.prune(&m.low)
	case m.lowSize < m.highSize:
		heap.Push(&m.low, heap.Pop(&m.high))
		m.lowSize++
		m.highSize--
		m.prune(&m.high)
	}
}

func (m *Median) prune(h *maxHeap) {
	for h.Len() > 0 {
		x := h.top()
		n := m.pending[x]
		if n == 0 {
			return
		}

		if n == 1 {
			delete(m.pending, x)
		} else {
			m.pending[x] = n - 1
		}

		heap.Pop(h)
	}
}

// maxHeap orders values by sign*value, so sign -1 turns it into a min-heap.
type maxHeap struct {
	values []float64
	sign   float64
}

func (h *maxHeap) Len() int           { return len(h.values) }
func (h *maxHeap) Less(i, j int) bool { return h.sign*h.values[i] > h.sign*h.values[j] }
func (h *maxHeap) Swap(i, j int)      { h.values[i], h.values[j] = h.values[j], h.values[i] }
func (h *maxHeap) Push(x any)         { h.values = append(h.values, x.(float64)) }

func (h *maxHeap) Pop() any {
	n := len(h.values)
	x := h.values[n-1]
	h.values = h.values[:n-1]

	return x
}

func (h *maxHeap) top() float64 {
	return h.values[0]
}
