package engine

import (
	"math"
	"math/cmplx"
)

// Richardson combines results of a scheme of order p computed with steps h
// and 2h as (2^p·X_h - X_2h)/(2^p - 1).
type Richardson struct {
	Order int
}

func (r Richardson) combine(fine, coarse complex128) complex128 {
	w := math.Exp2(float64(r.Order))
	return (complex(w, 0)*fine - coarse) / complex(w-1, 0)
}

// Values extrapolates fine in place. Entries whose coarse counterpart is not
// finite keep their fine value.
func (r Richardson) Values(fine, coarse []complex128) {
	for i := range min(len(fine), len(coarse)) {
		if v := r.combine(fine[i], coarse[i]); !cmplx.IsNaN(v) && !cmplx.IsInf(v) {
			fine[i] = v
		}
	}
}

// Continuous extrapolates every output of fine from coarse except at nodes
// that are degenerate in either sweep.
func (r Richardson) Continuous(fine, coarse *Continuous) {
	skip := make(map[int]bool, len(fine.Degenerate)+len(coarse.Degenerate))
	for _, i := range fine.Degenerate {
		skip[i] = true
	}
	for _, i := range coarse.Degenerate {
		skip[i] = true
	}
	apply := func(f, c []complex128) {
		if f == nil || c == nil {
			return
		}
		for i := range f {
			if !skip[i] {
				r.Values(f[i:i+1], c[i:i+1])
			}
		}
	}
	apply(fine.Reflection, coarse.Reflection)
	apply(fine.A, coarse.A)
	apply(fine.B, coarse.B)
}

// BoundStates extrapolates each fine bound state and its coefficients from
// the nearest coarse bound state within maxDist. Unmatched states are left
// unchanged. The result is re-sorted with the coefficients kept aligned.
func (r Richardson) BoundStates(fine, coarse *Discrete, maxDist float64) {
	for k, lam := range fine.BoundStates {
		best, dist := -1, maxDist
		for j, c := range coarse.BoundStates {
			if d := cmplx.Abs(lam - c); d < dist {
				best, dist = j, d
			}
		}
		if best < 0 {
			continue
		}
		fine.BoundStates[k] = r.combine(lam, coarse.BoundStates[best])
		if fine.NormingConstants != nil && coarse.NormingConstants != nil {
			r.Values(fine.NormingConstants[k:k+1], coarse.NormingConstants[best:best+1])
		}
		if fine.Residues != nil && coarse.Residues != nil {
			r.Values(fine.Residues[k:k+1], coarse.Residues[best:best+1])
		}
	}
	fine.sort()
}
