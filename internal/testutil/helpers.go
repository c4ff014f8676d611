// Package testutil provides test helpers and closed-form scattering data of
// reference potentials.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-nft/internal/mathutil"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance  = 1e-10
	SpectrumTolerance = 1e-6
	CoarseTolerance   = 1e-3
)

// Sech returns d samples of amp·sech(t) on the vanishing grid of [t1, t2].
func Sech(d int, t1, t2, amp float64) []complex128 {
	q := make([]complex128, d)
	h := (t2 - t1) / float64(d-1)
	for i := range q {
		q[i] = complex(amp/math.Cosh(t1+float64(i)*h), 0)
	}
	return q
}

// SechBoundStates returns the eigenvalues i(amp - 1/2 - m), m = 0, 1, ..., of
// the focusing potential amp·sech(t) in ascending imaginary part.
func SechBoundStates(amp float64) []complex128 {
	var out []complex128
	for m := 0; amp-0.5-float64(m) > 0; m++ {
		out = append(out, complex(0, amp-0.5-float64(m)))
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// SechA returns a(ξ) of the focusing potential amp·sech(t):
//
//	a(ξ) = Γ(1/2 - iξ)² / (Γ(1/2 - iξ + amp)·Γ(1/2 - iξ - amp))
func SechA(amp, xi float64) complex128 {
	z := complex(0.5, -xi)
	la := 2*mathutil.LogGamma(z) - mathutil.LogGamma(z+complex(amp, 0)) - mathutil.LogGamma(z-complex(amp, 0))
	return cmplx.Exp(la)
}

// SechReflectionMagnitude returns |R(ξ)| = |sin(π·amp)|/(cosh(πξ)·|a(ξ)|).
func SechReflectionMagnitude(amp, xi float64) float64 {
	b := math.Abs(math.Sin(math.Pi*amp)) / math.Cosh(math.Pi*xi)
	return b / cmplx.Abs(SechA(amp, xi))
}

// AssertComplexInDelta verifies |expected - actual| ≤ tolerance.
func AssertComplexInDelta(t *testing.T, expected, actual complex128, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	d := cmplx.Abs(expected - actual)
	if d <= tolerance {
		return true
	}
	return assert.Fail(t, "complex values differ",
		"expected %v, got %v (|diff| = %e > %e)", expected, actual, d, tolerance)
}

// AssertComplexSliceInDelta compares two slices element by element.
func AssertComplexSliceInDelta(t *testing.T, expected, actual []complex128, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !AssertComplexInDelta(t, expected[i], actual[i], tolerance, "index %d", i) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no element is NaN or infinite.
func AssertNoNaNOrInf(t *testing.T, s []complex128) bool {
	t.Helper()
	for i, v := range s {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return assert.Fail(t, "found non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// MaxAbsDiff returns max |a[i] - b[i]| over the common length.
func MaxAbsDiff(a, b []complex128) float64 {
	var m float64
	for i := range min(len(a), len(b)) {
		m = math.Max(m, cmplx.Abs(a[i]-b[i]))
	}
	return m
}
