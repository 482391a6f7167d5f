// Package biquad provides the second-order IIR runtime used by every
// frequency-selective filter in this module.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients]. A [Chain] cascades sections
// behind an input gain. Block processing dispatches to a kernel chosen once
// per process from the CPU features reported by algo-vecmath; all kernels
// evaluate the same per-sample recurrence, so block boundaries never change
// the output.
//
// Coefficient design lives in dsp/filter/design/iir.
package biquad
