package biquad

import vecmath "github.com/cwbudde/algo-vecmath"

// Chain is an ordered cascade of biquad sections processed in series, with
// an overall gain applied to the input. Higher-order IIR designs are
// realized as a Chain.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets the gain applied to the input before the first section.
// Default is 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade with one Section per Coefficients value.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample scales x by the gain and runs it through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the whole cascade. Because each
// section is causal, running the block section by section gives the same
// samples as ProcessSample, and splitting a stream into blocks of any size
// gives the same samples as one call over the whole stream.
func (c *Chain) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	if c.gain != 1 {
		vecmath.ScaleBlockInPlace(buf, c.gain)
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears the state of every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the filter order: 2 per biquad, 1 per first-order section.
func (c *Chain) Order() int {
	order := 0
	for i := range c.sections {
		if c.sections[i].FirstOrder() {
			order++
		} else {
			order += 2
		}
	}

	return order
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// Section returns a pointer to the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// Coefficients returns a copy of the section coefficients in cascade order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// State returns a snapshot of all section states.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores states previously returned by State. The slice length
// must match NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}

// clone returns an independent copy of the chain including its state.
func (c *Chain) clone() *Chain {
	out := &Chain{
		sections: make([]Section, len(c.sections)),
		gain:     c.gain,
	}
	copy(out.sections, c.sections)

	return out
}
