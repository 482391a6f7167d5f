package main

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-bioflow/datafilter"
	"github.com/cwbudde/algo-bioflow/logging"
)

func applyCmd() *cobra.Command {
	var (
		configPath string
		inputPath  string
		outputPath string
		delimiter  string
		chunk      int
		header     bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Stream every column of a sample file through the pipeline",
		Example: `bfilter apply --config pipeline.yaml --input raw.tsv --output filtered.tsv
bfilter apply --config pipeline.yaml --delimiter , --header < raw.csv > filtered.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPipeline(configPath)
			if err != nil {
				return err
			}

			if chunk > 0 {
				p.ChunkSize = chunk
			}

			comma, err := parseDelimiter(delimiter)
			if err != nil {
				return err
			}

			in, closeIn, err := openInput(cmd, inputPath)
			if err != nil {
				return err
			}
			defer closeIn()

			table, err := datafilter.ReadTable(in, comma, header)
			if err != nil {
				return err
			}

			reg := datafilter.NewRegistry(datafilter.WithInitialCapacity(len(table.Channels) * len(p.Steps)))

			filtered, err := runPipeline(reg, p, table.Channels)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(cmd, outputPath)
			if err != nil {
				return err
			}

			if err := datafilter.WriteTable(out, comma, datafilter.Table{Names: table.Names, Channels: filtered}); err != nil {
				closeOut()
				return err
			}

			return closeOut()
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "pipeline YAML file")
	cmd.Flags().StringVar(&inputPath, "input", "-", "input sample file, - for stdin")
	cmd.Flags().StringVar(&outputPath, "output", "-", "output sample file, - for stdout")
	cmd.Flags().StringVar(&delimiter, "delimiter", "\t", `column delimiter, \t for tab`)
	cmd.Flags().IntVar(&chunk, "chunk", 0, "rows per processing call, overrides chunk_size")
	cmd.Flags().BoolVar(&header, "header", false, "first row holds column names")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func parseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}

	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}

func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

// runPipeline gives every column its own filter handles and streams it
// through them chunk by chunk.
func runPipeline(reg *datafilter.Registry, p *pipeline, columns [][]float64) ([][]float64, error) {
	ids := make([][]int, len(columns))
	defer func() {
		for _, chain := range ids {
			for _, id := range chain {
				_ = reg.Destroy(id)
			}
		}
	}()

	for c := range columns {
		for i := range p.Steps {
			params, err := p.params(i)
			if err != nil {
				return nil, err
			}

			id, err := reg.Create(params)
			if err != nil {
				return nil, fmt.Errorf("step %d (%s): %w", i, params, err)
			}

			ids[c] = append(ids[c], id)
		}
	}

	out := make([][]float64, len(columns))
	for c, col := range columns {
		chunk := p.ChunkSize
		if chunk <= 0 {
			chunk = max(len(col), 1)
		}

		buf := make([]float64, chunk)
		res := make([]float64, 0, len(col))

		for start := 0; start < len(col); start += chunk {
			m := copy(buf, col[start:min(start+chunk, len(col))])
			for _, id := range ids[c] {
				n, err := reg.Process(id, buf[:m])
				if err != nil {
					return nil, fmt.Errorf("column %d: %w", c+1, err)
				}

				m = n
			}

			res = append(res, buf[:m]...)
		}

		out[c] = res
	}

	logging.Data().WithFields(logrus.Fields{
		"channels": len(columns),
		"steps":    len(p.Steps),
		"chunk":    p.ChunkSize,
	}).Info("pipeline applied")

	return out, nil
}
