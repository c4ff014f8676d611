package mathutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBesselI0 tests BesselI0 against known values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"Zero", 0.0, 1.0},
		{"One", 1.0, 1.2660658777520082},
		{"Five", 5.0, 27.239871823604442},
		{"Ten", 10.0, 2815.716628466254},
		{"Negative one", -1.0, 1.2660658777520082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BesselI0(tt.x)
			assert.InEpsilon(t, tt.expected, got, 1e-12)
		})
	}
}

func TestLogGamma(t *testing.T) {
	tests := []struct {
		name string
		z    complex128
		want complex128 // Γ(z)
	}{
		{"integer", 5, 24},
		{"half", 0.5, complex(math.Sqrt(math.Pi), 0)},
		{"three halves", 1.5, complex(math.Sqrt(math.Pi)/2, 0)},
		{"negative half", -0.5, complex(-2*math.Sqrt(math.Pi), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cmplx.Exp(LogGamma(tt.z))
			assert.InDelta(t, 0, cmplx.Abs(got-tt.want)/cmplx.Abs(tt.want), 1e-12)
		})
	}
}

// |Γ(1/2 + iy)|² = π/cosh(πy).
func TestLogGamma_CriticalLine(t *testing.T) {
	for _, y := range []float64{-3, -0.7, 0, 0.2, 1.5, 4} {
		got := math.Exp(2 * real(LogGamma(complex(0.5, y))))
		assert.InEpsilon(t, math.Pi/math.Cosh(math.Pi*y), got, 1e-11, "y=%v", y)
	}
}

func TestTrig_SeriesMatchesClosedForm(t *testing.T) {
	const h = 0.1
	for _, w2 := range []complex128{1e-3 / (h * h), complex(0.02, 0.01) / (h * h), -0.5 / (h * h)} {
		c, s, f := Trig(w2, h)
		w := cmplx.Sqrt(w2)
		assert.InDelta(t, 0, cmplx.Abs(c-cmplx.Cos(w*h)), 1e-12)
		assert.InDelta(t, 0, cmplx.Abs(s-cmplx.Sin(w*h)/w), 1e-12)
		assert.InDelta(t, 0, cmplx.Abs(f-(complex(h, 0)*cmplx.Cos(w*h)-cmplx.Sin(w*h)/w)/w2), 1e-9)
	}

	// Inside the series branch: w = 1e-3, w·h = 1e-4.
	c, s, _ := Trig(1e-6, h)
	assert.InDelta(t, math.Cos(1e-4), real(c), 1e-15)
	assert.InDelta(t, math.Sin(1e-4)/1e-3, real(s), 1e-15)
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ n, want, log2 int }{
		{1, 1, 0},
		{2, 2, 1},
		{3, 4, 2},
		{1000, 1024, 10},
		{1024, 1024, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPow2(tt.n), "NextPow2(%d)", tt.n)
		assert.Equal(t, tt.log2, Log2Ceil(tt.n), "Log2Ceil(%d)", tt.n)
	}
}
