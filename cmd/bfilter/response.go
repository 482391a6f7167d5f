package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bioflow/datafilter"
)

func responseCmd() *cobra.Command {
	var (
		configPath string
		stepIndex  int
		points     int
	)

	cmd := &cobra.Command{
		Use:     "response",
		Short:   "Print the frequency response of one pipeline step",
		Example: `bfilter response --config pipeline.yaml --step 1 --points 128`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPipeline(configPath)
			if err != nil {
				return err
			}

			return printResponse(cmd.OutOrStdout(), p, stepIndex, points)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "pipeline YAML file")
	cmd.Flags().IntVar(&stepIndex, "step", 0, "zero-based step index")
	cmd.Flags().IntVar(&points, "points", 64, "number of frequencies from DC to Nyquist")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// printResponse tabulates magnitude and phase of step i at points evenly
// spaced frequencies from DC to Nyquist inclusive.
func printResponse(w io.Writer, p *pipeline, i, points int) error {
	if points < 2 {
		return fmt.Errorf("%w: points must be at least 2, got %d", errConfig, points)
	}

	params, err := p.params(i)
	if err != nil {
		return err
	}

	f, err := datafilter.New(params)
	if err != nil {
		return fmt.Errorf("step %d (%s): %w", i, params, err)
	}

	r, ok := f.(datafilter.Responder)
	if !ok {
		return fmt.Errorf("%w: step %d (%s) has no linear frequency response", errConfig, i, params.Kind)
	}

	fs := float64(p.SamplingRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "# %s\n", params)
	fmt.Fprintln(tw, "freq_hz\tmagnitude\tmagnitude_db\tphase_deg\t")

	for k := range points {
		freq := fs / 2 * float64(k) / float64(points-1)
		h := r.Response(freq, fs)
		mag := cmplx.Abs(h)
		fmt.Fprintf(tw, "%.3f\t%.6f\t%.2f\t%.2f\t\n", freq, mag, 20*math.Log10(mag), cmplx.Phase(h)*180/math.Pi)
	}

	return tw.Flush()
}
