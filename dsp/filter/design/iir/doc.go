// Package iir designs Butterworth, Chebyshev Type I and Bessel filters as
// cascades of biquad sections.
//
// A design starts from an analog prototype whose poles are normalized to a
// 1 rad/s cutoff, maps it to lowpass, highpass, bandpass or bandstop with the
// classic analog frequency transforms after prewarping the band edges with
// tan(pi*f/fs), and lands in the z-plane through the bilinear transform.
// Conjugate poles are paired into second-order sections; the real pole of an
// odd lowpass or highpass prototype becomes a first-order section.
//
// Band designs double the order: a bandpass or bandstop of order n runs n
// biquads.
package iir
