package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-bioflow/datafilter"
)

var errConfig = errors.New("invalid pipeline")

// pipeline is the YAML document read by apply and response.
type pipeline struct {
	SamplingRate int    `yaml:"sampling_rate"`
	ChunkSize    int    `yaml:"chunk_size"`
	Steps        []step `yaml:"steps"`
}

// step describes one filter. Enum fields take the names printed by the
// datafilter String methods; empty values select butterworth, fifty and
// mean.
type step struct {
	Kind       string  `yaml:"kind"`
	Cutoff     float64 `yaml:"cutoff"`
	CenterFreq float64 `yaml:"center_freq"`
	BandWidth  float64 `yaml:"band_width"`
	Order      int     `yaml:"order"`
	FilterType string  `yaml:"filter_type"`
	Ripple     float64 `yaml:"ripple"`
	NoiseType  string  `yaml:"noise_type"`
	Period     int     `yaml:"period"`
	Operation  string  `yaml:"operation"`
}

func loadPipeline(path string) (*pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parsePipeline(raw)
}

func parsePipeline(raw []byte) (*pipeline, error) {
	var p pipeline
	if err := yaml.UnmarshalStrict(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", errConfig, err)
	}

	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", errConfig)
	}

	if p.ChunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk_size %d", errConfig, p.ChunkSize)
	}

	// Parse every step up front so a typo fails before any data is read.
	for i := range p.Steps {
		if _, err := p.params(i); err != nil {
			return nil, err
		}
	}

	return &p, nil
}

// params converts step i into datafilter parameters.
func (p *pipeline) params(i int) (datafilter.Params, error) {
	if i < 0 || i >= len(p.Steps) {
		return datafilter.Params{}, fmt.Errorf("%w: step %d out of range [0, %d)", errConfig, i, len(p.Steps))
	}

	s := p.Steps[i]

	kind, err := datafilter.ParseKind(s.Kind)
	if err != nil {
		return datafilter.Params{}, fmt.Errorf("step %d: %w", i, err)
	}

	params := datafilter.Params{
		Kind:         kind,
		SamplingRate: p.SamplingRate,
		Cutoff:       s.Cutoff,
		CenterFreq:   s.CenterFreq,
		BandWidth:    s.BandWidth,
		Order:        s.Order,
		Ripple:       s.Ripple,
		Period:       s.Period,
	}

	if s.FilterType != "" {
		if params.FilterType, err = datafilter.ParseFilterType(s.FilterType); err != nil {
			return datafilter.Params{}, fmt.Errorf("step %d: %w", i, err)
		}
	}

	if s.NoiseType != "" {
		if params.NoiseType, err = datafilter.ParseNoiseType(s.NoiseType); err != nil {
			return datafilter.Params{}, fmt.Errorf("step %d: %w", i, err)
		}
	}

	if s.Operation != "" {
		if params.Operation, err = datafilter.ParseAggOperation(s.Operation); err != nil {
			return datafilter.Params{}, fmt.Errorf("step %d: %w", i, err)
		}
	}

	return params, nil
}
