package datafilter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Table holds one sample slice per channel and optional channel names. On
// disk a table is transposed: one line per sample, one field per channel.
type Table struct {
	Names    []string
	Channels [][]float64
}

// ReadTable parses comma-separated lines into channels. Lines starting with
// '#' are skipped. With header the first line supplies Names.
func ReadTable(r io.Reader, comma rune, header bool) (_ Table, err error) {
	defer recoverInto(&err)

	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		t   Table
		row int
	)

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Table{}, reject(nil, &Error{Code: InvalidArgumentsError, Msg: err.Error(), Err: err})
		}

		row++

		if header && t.Names == nil {
			t.Names = append([]string(nil), rec...)
			continue
		}

		if t.Channels == nil {
			t.Channels = make([][]float64, len(rec))
		}

		for c, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return Table{}, reject(logrus.Fields{"row": row, "column": c + 1}, &Error{
					Code: InvalidArgumentsError,
					Msg:  fmt.Sprintf("row %d column %d: %v", row, c+1, err),
					Err:  err,
				})
			}

			t.Channels[c] = append(t.Channels[c], v)
		}
	}

	return t, nil
}

// WriteTable writes t with one line per sample. Every channel must hold the
// same number of samples.
func WriteTable(w io.Writer, comma rune, t Table) (err error) {
	defer recoverInto(&err)

	rows := 0
	if len(t.Channels) > 0 {
		rows = len(t.Channels[0])
	}

	for c, ch := range t.Channels {
		if len(ch) != rows {
			return reject(logrus.Fields{"channel": c, "samples": len(ch), "expected": rows}, invalidArgs("channel %d has %d samples, expected %d", c, len(ch), rows))
		}
	}

	if t.Names != nil && len(t.Names) != len(t.Channels) {
		return reject(logrus.Fields{"names": len(t.Names), "channels": len(t.Channels)}, invalidArgs("%d names for %d channels", len(t.Names), len(t.Channels)))
	}

	cw := csv.NewWriter(w)
	cw.Comma = comma

	if t.Names != nil {
		if err := cw.Write(t.Names); err != nil {
			return ioError(err)
		}
	}

	rec := make([]string, len(t.Channels))
	for r := range rows {
		for c := range t.Channels {
			rec[c] = strconv.FormatFloat(t.Channels[c][r], 'g', -1, 64)
		}

		if err := cw.Write(rec); err != nil {
			return ioError(err)
		}
	}

	cw.Flush()

	return ioError(cw.Error())
}

// WriteFile stores data, one row per channel, as a tab-separated table.
// mode "w" truncates path and "a" appends to it.
func WriteFile(data [][]float64, path, mode string) (err error) {
	defer recoverInto(&err)

	flags := os.O_WRONLY | os.O_CREATE
	switch mode {
	case "w":
		flags |= os.O_TRUNC
	case "a":
		flags |= os.O_APPEND
	default:
		return reject(logrus.Fields{"mode": mode}, invalidArgs("file mode must be w or a, got %q", mode))
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return ioError(err)
	}

	if err := WriteTable(f, '\t', Table{Channels: data}); err != nil {
		_ = f.Close()
		return err
	}

	return ioError(f.Close())
}

// ReadFile loads a table written by WriteFile, one row per channel.
func ReadFile(path string) (_ [][]float64, err error) {
	defer recoverInto(&err)

	f, err := os.Open(path)
	if err != nil {
		return nil, ioError(err)
	}
	defer f.Close()

	t, err := ReadTable(f, '\t', false)
	if err != nil {
		return nil, err
	}

	if len(t.Channels) == 0 {
		return nil, reject(logrus.Fields{"path": path}, invalidArgs("%s holds no samples", path))
	}

	return t.Channels, nil
}

func ioError(err error) error {
	if err == nil {
		return nil
	}

	return reject(nil, &Error{Code: GeneralError, Msg: err.Error(), Err: err})
}
