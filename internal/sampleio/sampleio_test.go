package sampleio

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_RoundTrip(t *testing.T) {
	x := []float64{-1, 0, 0.5}
	q := []complex128{1 + 2i, -0.25, complex(1e-12, -3.5)}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, "t,re,im", x, q))
	assert.True(t, strings.HasPrefix(buf.String(), "t,re,im\n"))

	gotX, gotQ, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, x, gotX)
	assert.Equal(t, q, gotQ)
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name  string
		input string
		x     []float64
		q     []complex128
	}{
		{"no header", "0,1,2\n1,3,4\n", []float64{0, 1}, []complex128{1 + 2i, 3 + 4i}},
		{"real samples", "xi,re\n0.5, 2\n", []float64{0.5}, []complex128{2}},
		{"comments and spaces", "# sech\n0, 1, 0\n 1, 0.5, -0.5\n", []float64{0, 1}, []complex128{1, 0.5 - 0.5i}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, q, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.q, q)
		})
	}
}

func TestReadCSV_Errors(t *testing.T) {
	for name, input := range map[string]string{
		"empty":       "",
		"header only": "t,re,im\n",
		"one field":   "1\n",
		"four fields": "1,2,3,4\n",
		"bad number":  "0,1,2\n1,x,2\n",
		"bare quote":  "0,\"1,2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestWriteCSV_LengthMismatch(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, "", []float64{1}, nil)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestParseComplexList(t *testing.T) {
	got, err := ParseComplexList("0.5i, 1+0.2i,-2")
	require.NoError(t, err)
	assert.Equal(t, []complex128{0.5i, 1 + 0.2i, -2}, got)

	got, err = ParseComplexList("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseComplexList("1i, oops")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestWAV_RoundTrip(t *testing.T) {
	q := make([]complex128, 200)
	for n := range q {
		x := float64(n-100) / 20
		q[n] = complex(0.9/math.Cosh(x), 0.4*math.Sin(x)/math.Cosh(x))
	}
	path := filepath.Join(t.TempDir(), "iq.wav")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, q, 48000, 1))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, rate, err := ReadWAV(f)
	require.NoError(t, err)
	assert.Equal(t, 48000, rate)
	require.Len(t, got, len(q))

	lsb := 1 / fullScale(defaultBitDepth)
	for n := range q {
		assert.InDelta(t, real(q[n]), real(got[n]), lsb)
		assert.InDelta(t, imag(q[n]), imag(got[n]), lsb)
	}
}

func TestWriteWAV_PeakNormalization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peak.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteWAV(f, []complex128{4, -2i}, 8000, 0))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, _, err := ReadWAV(f)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 1, real(got[0]), 1e-6)
	assert.InDelta(t, -0.5, imag(got[1]), 1e-6)
}

func TestReadWAV_NotWAV(t *testing.T) {
	_, _, err := ReadWAV(bytes.NewReader([]byte("definitely not RIFF data")))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestQuantize(t *testing.T) {
	full := fullScale(16)
	assert.Equal(t, 32767, quantize(2, full))
	assert.Equal(t, -32767, quantize(-1, full))
	assert.Equal(t, 0, quantize(0, full))
}
