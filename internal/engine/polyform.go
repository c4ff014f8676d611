package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/filter"
	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/poly"
)

// transferPoly returns the polynomial transfer matrix P(z) of samples q on a
// grid with step h. Modal schemes use their first-order middle factor; every
// other scheme uses the exact e^{hQ}.
func transferPoly(q []complex128, h, kappa float64, id discretization.ID) (poly.MatPoly, error) {
	factors := make([]mathutil.Mat2, len(q))
	for n, qn := range q {
		c, err := discretization.PolyFactor(id, qn, h, kappa)
		if err != nil {
			return poly.MatPoly{}, fmt.Errorf("sample %d: %w", n, err)
		}
		factors[n] = c
	}
	return poly.ChainProduct(factors), nil
}

// rootsToLambda maps polynomial roots in z = e^{2iλh} back to λ.
func rootsToLambda(roots []complex128, h float64) []complex128 {
	out := make([]complex128, len(roots))
	for i, z := range roots {
		out[i] = discretization.LambdaFromZ(z, h)
	}
	return out
}

// subsampleSize returns the sample count used for coarse localization.
func subsampleSize(d int) int {
	target := math.Ceil(math.Sqrt(float64(d)) * math.Log2(float64(d)))
	return min(d, min(maxSubsample, max(minSubsample, int(target))))
}

// subsample decimates q to roughly size samples and returns the coarse
// samples with their step.
func subsample(q []complex128, h float64, periodic bool, size int) ([]complex128, float64, error) {
	factor := max(1, len(q)/size)
	sub, err := filter.Decimate(q, factor, periodic)
	if err != nil {
		return nil, 0, err
	}
	hSub := h * float64(factor)
	if periodic {
		// Keep the period when factor does not divide D.
		hSub = h * float64(len(q)) / float64(len(sub))
	}
	return sub, hSub, nil
}
