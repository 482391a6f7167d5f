// Command bfilter runs biosignal filter pipelines over delimited sample
// files and prints filter frequency responses.
//
// Usage:
//
//	bfilter apply --config pipeline.yaml --input in.tsv --output out.tsv
//	bfilter response --config pipeline.yaml --step 0 --points 64
//
// A pipeline file lists the filters applied to every column in order:
//
//	sampling_rate: 250
//	chunk_size: 250
//	steps:
//	  - kind: lowpass
//	    cutoff: 30
//	    order: 3
//	    filter_type: butterworth
//	  - kind: environmental_noise
//	    noise_type: fifty
//
// Each column is streamed through its own filter instances in chunks of
// chunk_size rows, so the result matches what an acquisition loop feeding
// the same filters would produce.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bioflow/logging"
)

func newRootCmd() *cobra.Command {
	var (
		logLevel string
		logFile  string
	)

	cmd := &cobra.Command{
		Use:           "bfilter",
		Short:         "Filter biosignal recordings",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != "" {
				if err := logging.SetLogFile(logFile); err != nil {
					return err
				}
			}

			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}

			return logging.SetLevel(level)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.Error.String(), "data logger level (trace, debug, info, warn, error, critical, off)")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write log output to this file instead of stderr")

	cmd.AddCommand(applyCmd(), responseCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
