package engine

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"

	"github.com/tphakala/go-nft/internal/mathutil"
)

// screen drops implausible candidates according to f and returns the
// survivors in canonical order. Non-finite values never survive.
func screen(cands []complex128, f Filtering, h, amp float64) []complex128 {
	nyquist := math.Pi / (2 * h)
	out := make([]complex128, 0, len(cands))
	for _, lam := range cands {
		if !mathutil.IsFiniteComplex(lam) {
			continue
		}
		if f != FilterNone {
			if imag(lam) <= 0 || math.Abs(real(lam)) >= nyquist || imag(lam) > amp*imagBoundSlack {
				continue
			}
		}
		out = append(out, lam)
	}
	sortSpectrum(out)
	if f == FilterFull {
		out = dedup(out, mergeTolerance)
	}
	return out
}

// sortSpectrum orders by ascending real part, ties by imaginary part.
func sortSpectrum(s []complex128) {
	slices.SortStableFunc(s, compareSpectral)
}

func compareSpectral(x, y complex128) int {
	if c := cmp.Compare(real(x), real(y)); c != 0 {
		return c
	}
	return cmp.Compare(imag(x), imag(y))
}

// dedup keeps the first of every group of values closer than tol·(1+|λ|).
func dedup(s []complex128, tol float64) []complex128 {
	out := s[:0]
	for _, v := range s {
		dup := false
		for _, kept := range out {
			if cmplx.Abs(v-kept) <= tol*(1+cmplx.Abs(kept)) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// inBox reports whether λ lies in [box[0], box[1]] × [box[2], box[3]].
func inBox(lam complex128, box [4]float64) bool {
	return real(lam) >= box[0] && real(lam) <= box[1] && imag(lam) >= box[2] && imag(lam) <= box[3]
}
