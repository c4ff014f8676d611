package main

import (
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	nft "github.com/tphakala/go-nft"
	"github.com/tphakala/go-nft/internal/sampleio"
)

const (
	plotHeight = 12
	plotWidth  = 72
)

// loadSignal reads samples and their time window. CSV files carry the time
// in the first column; WAV files use --t1 and --t2. For periodic input the
// window ends one step after the last CSV sample.
func loadSignal(path string, periodic bool) ([]complex128, nft.TimeWindow, error) {
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		f, err := os.Open(path)
		if err != nil {
			return nil, nft.TimeWindow{}, fmt.Errorf("failed to open input file: %w", err)
		}
		defer func() { _ = f.Close() }()
		q, _, err := sampleio.ReadWAV(f)
		if err != nil {
			return nil, nft.TimeWindow{}, err
		}
		return q, cfg.TimeWindow(), nil
	}

	t, q, err := readCSVFile(path)
	if err != nil {
		return nil, nft.TimeWindow{}, err
	}
	if len(t) < 2 {
		return nil, nft.TimeWindow{}, fmt.Errorf("%s: need at least two samples", path)
	}
	tw := nft.TimeWindow{T1: t[0], T2: t[len(t)-1]}
	if periodic {
		tw.T2 += (t[len(t)-1] - t[0]) / float64(len(t)-1)
	}
	return q, tw, nil
}

func readCSVFile(path string) ([]float64, []complex128, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return sampleio.ReadCSV(f)
}

func writeCSV(path, header string, x []float64, q []complex128) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := sampleio.WriteCSV(f, header, x, q); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func plotMagnitude(z []complex128, caption string) string {
	mag := make([]float64, len(z))
	for i, v := range z {
		mag[i] = cmplx.Abs(v)
	}
	return asciigraph.Plot(mag, asciigraph.Height(plotHeight), asciigraph.Width(plotWidth), asciigraph.Caption(caption))
}
