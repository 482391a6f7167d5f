// Package registry holds the biquad block kernels available on this build
// and selects one for the running CPU.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients with a0 normalized to 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// BlockKernel filters buf in place through one Direct Form II Transposed
// section starting from the delay state (d0, d1) and returns the final state.
//
// Every kernel must evaluate exactly the per-sample recurrence
//
//	y  = b0*x + d0
//	d0 = b1*x - a1*y + d1
//	d1 = b2*x - a2*y
//
// in sample order, so that results do not depend on how a stream is split
// into blocks or on which kernel was selected.
type BlockKernel func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

// Kernel is one registered implementation.
type Kernel struct {
	Name     string
	Level    cpu.SIMDLevel
	Priority int
	Block    BlockKernel
}

// Table stores the kernels registered by the arch packages.
type Table struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global is the table populated by the arch packages' init functions.
var Global = &Table{}

// Register adds a kernel. Kernels with a nil Block are ignored.
func (t *Table) Register(k Kernel) {
	if k.Block == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.kernels = append(t.kernels, k)
	slices.SortStableFunc(t.kernels, func(a, b Kernel) int {
		return b.Priority - a.Priority
	})
}

// Select returns the highest-priority kernel supported by features, or nil
// if none is.
func (t *Table) Select(features cpu.Features) *Kernel {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := range t.kernels {
		if cpu.Supports(features, t.kernels[i].Level) {
			k := t.kernels[i]
			return &k
		}
	}

	return nil
}

// Names lists registered kernel names in selection order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.kernels))
	for i := range t.kernels {
		names[i] = t.kernels[i].Name
	}

	return names
}
