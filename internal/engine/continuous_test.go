package engine

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/testutil"
)

func TestContinuousSpectrum_ZeroPotential(t *testing.T) {
	p := vanishing(t, make([]complex128, 32), -4, 4, 1, discretization.Split2A)
	got, err := ContinuousSpectrum(p, ContinuousRequest{Xi: Nodes(-2, 2, 9), Reflection: true, AB: true})
	require.NoError(t, err)
	assert.Empty(t, got.Degenerate)
	for i := range got.Reflection {
		testutil.AssertComplexInDelta(t, 0, got.Reflection[i], 1e-14)
		testutil.AssertComplexInDelta(t, 1, got.A[i], 1e-12)
		testutil.AssertComplexInDelta(t, 0, got.B[i], 1e-14)
	}
}

func TestContinuousSpectrum_Sech(t *testing.T) {
	const amp = 0.7
	p := sech(t, 2048, amp)
	xi := Nodes(-2, 2, 17)
	got, err := ContinuousSpectrum(p, ContinuousRequest{Xi: xi, Reflection: true})
	require.NoError(t, err)
	assert.Nil(t, got.A)
	assert.Nil(t, got.B)
	for i, x := range xi {
		assert.InDelta(t, testutil.SechReflectionMagnitude(amp, x), cmplx.Abs(got.Reflection[i]), 3e-5, "xi=%v", x)
	}
}

// 0.5·sech(t) has a(0) = 0: the eigenvalue sits on the real axis.
func TestContinuousSpectrum_Degenerate(t *testing.T) {
	p := sech(t, 1024, 0.5)
	xi := Nodes(-1, 1, 5)
	got, err := ContinuousSpectrum(p, ContinuousRequest{Xi: xi, Reflection: true, AB: true, DegeneracyTolerance: 1e-3})
	require.NoError(t, err)
	require.Equal(t, []int{2}, got.Degenerate)
	assert.Zero(t, got.Reflection[2])
	assert.NotZero(t, got.B[2])
	assert.NotZero(t, got.Reflection[1])
}
