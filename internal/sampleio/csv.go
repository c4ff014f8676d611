// Package sampleio reads and writes complex sample sequences as CSV
// (x, re, im) rows or as stereo WAV files carrying I/Q channels.
package sampleio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrFormat is returned for malformed input.
var ErrFormat = errors.New("malformed sample file")

// ReadCSV reads rows of "x,re,im" (or "x,re" for real samples). A first row
// that does not parse as numbers is taken as a header.
func ReadCSV(r io.Reader) (x []float64, q []complex128, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if len(rec) < 2 || len(rec) > 3 {
			return nil, nil, fmt.Errorf("%w: row %d has %d fields, want 2 or 3", ErrFormat, row+1, len(rec))
		}
		vals, perr := parseFloats(rec)
		if perr != nil {
			if row == 0 {
				continue
			}
			return nil, nil, fmt.Errorf("%w: row %d: %w", ErrFormat, row+1, perr)
		}
		var im float64
		if len(vals) == 3 {
			im = vals[2]
		}
		x = append(x, vals[0])
		q = append(q, complex(vals[1], im))
	}
	if len(q) == 0 {
		return nil, nil, fmt.Errorf("%w: no samples", ErrFormat)
	}
	return x, q, nil
}

// WriteCSV writes one "x,re,im" row per sample under the given header.
func WriteCSV(w io.Writer, header string, x []float64, q []complex128) error {
	if len(x) != len(q) {
		return fmt.Errorf("%w: %d abscissae for %d samples", ErrFormat, len(x), len(q))
	}
	cw := csv.NewWriter(w)
	if header != "" {
		if err := cw.Write(strings.Split(header, ",")); err != nil {
			return err
		}
	}
	for i, v := range q {
		rec := []string{
			strconv.FormatFloat(x[i], 'g', -1, 64),
			strconv.FormatFloat(real(v), 'g', -1, 64),
			strconv.FormatFloat(imag(v), 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseFloats(rec []string) ([]float64, error) {
	out := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseComplexList parses a comma-separated list such as "0.5i, 1+0.2i".
func ParseComplexList(s string) ([]complex128, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]complex128, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseComplex(strings.TrimSpace(p), 128)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrFormat, p, err)
		}
		out[i] = v
	}
	return out, nil
}
