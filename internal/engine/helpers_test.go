package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/scatter"
	"github.com/tphakala/go-nft/internal/testutil"
)

func vanishing(t testing.TB, q []complex128, t1, t2, kappa float64, id discretization.ID) *scatter.Propagator {
	t.Helper()
	s, err := discretization.Lookup(id)
	require.NoError(t, err)
	p, err := scatter.NewVanishing(q, t1, t2, kappa, s, true)
	require.NoError(t, err)
	return p
}

func periodic(t testing.TB, q []complex128, t1, t2, kappa float64, id discretization.ID) *scatter.Propagator {
	t.Helper()
	s, err := discretization.Lookup(id)
	require.NoError(t, err)
	p, err := scatter.NewPeriodic(q, t1, t2, kappa, s, true)
	require.NoError(t, err)
	return p
}

func sech(t testing.TB, d int, amp float64) *scatter.Propagator {
	t.Helper()
	return vanishing(t, testutil.Sech(d, -16, 16, amp), -16, 16, 1, discretization.Split4B)
}

// closest returns the element of s nearest to z and its distance.
func closest(s []complex128, z complex128) (complex128, float64) {
	best, dist := complex128(0), -1.0
	for _, v := range s {
		if d := abs(v - z); dist < 0 || d < dist {
			best, dist = v, d
		}
	}
	return best, dist
}
