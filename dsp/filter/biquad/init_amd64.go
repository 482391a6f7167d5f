//go:build amd64 && !purego

package biquad

import (
	_ "github.com/cwbudde/algo-bioflow/dsp/filter/biquad/internal/arch/amd64/avx2" // register unrolled kernel
	_ "github.com/cwbudde/algo-bioflow/dsp/filter/biquad/internal/arch/generic"    // register generic kernel
)
