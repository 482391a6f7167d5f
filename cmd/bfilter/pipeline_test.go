package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-bioflow/datafilter"
)

const lowpassPipeline = `
sampling_rate: 250
chunk_size: 50
steps:
  - kind: lowpass
    cutoff: 30
    order: 3
    filter_type: butterworth
  - kind: environmental_noise
    noise_type: fifty_and_sixty
  - kind: rolling
    period: 3
    operation: median
`

func TestParsePipeline(t *testing.T) {
	p, err := parsePipeline([]byte(lowpassPipeline))
	require.NoError(t, err)
	require.Equal(t, 250, p.SamplingRate)
	require.Equal(t, 50, p.ChunkSize)
	require.Len(t, p.Steps, 3)

	lp, err := p.params(0)
	require.NoError(t, err)
	require.Equal(t, datafilter.Params{
		Kind:         datafilter.KindLowpass,
		SamplingRate: 250,
		Cutoff:       30,
		Order:        3,
		FilterType:   datafilter.Butterworth,
	}, lp)

	env, err := p.params(1)
	require.NoError(t, err)
	require.Equal(t, datafilter.KindEnvironmentalNoise, env.Kind)
	require.Equal(t, datafilter.FiftyAndSixty, env.NoiseType)

	roll, err := p.params(2)
	require.NoError(t, err)
	require.Equal(t, datafilter.KindRolling, roll.Kind)
	require.Equal(t, 3, roll.Period)
	require.Equal(t, datafilter.Median, roll.Operation)
}

func TestParsePipelineDefaults(t *testing.T) {
	p, err := parsePipeline([]byte("sampling_rate: 500\nsteps:\n  - kind: highpass\n    cutoff: 1\n    order: 2\n"))
	require.NoError(t, err)
	require.Zero(t, p.ChunkSize)

	hp, err := p.params(0)
	require.NoError(t, err)
	require.Equal(t, datafilter.Butterworth, hp.FilterType)
	require.Equal(t, datafilter.Fifty, hp.NoiseType)
	require.Equal(t, datafilter.Mean, hp.Operation)
}

func TestParsePipelineErrors(t *testing.T) {
	cases := map[string]string{
		"no steps":       "sampling_rate: 250\n",
		"unknown field":  "sampling_rate: 250\nsteps:\n  - kind: lowpass\n    cutof: 30\n",
		"unknown kind":   "sampling_rate: 250\nsteps:\n  - kind: notch\n",
		"bad family":     "sampling_rate: 250\nsteps:\n  - kind: lowpass\n    filter_type: elliptic\n",
		"bad noise":      "sampling_rate: 250\nsteps:\n  - kind: environmental_noise\n    noise_type: seventy\n",
		"bad operation":  "sampling_rate: 250\nsteps:\n  - kind: rolling\n    period: 3\n    operation: max\n",
		"negative chunk": "sampling_rate: 250\nchunk_size: -1\nsteps:\n  - kind: lowpass\n",
		"malformed yaml": "steps: [",
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parsePipeline([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestPipelineParamsOutOfRange(t *testing.T) {
	p, err := parsePipeline([]byte(lowpassPipeline))
	require.NoError(t, err)

	_, err = p.params(3)
	require.ErrorIs(t, err, errConfig)

	_, err = p.params(-1)
	require.ErrorIs(t, err, errConfig)
}
