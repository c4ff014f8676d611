package engine

import (
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/scatter"
)

// newton runs at most maxIter Newton steps on a(λ) from seed. It reports
// whether the last step fell below the tolerance.
func newton(p *scatter.Propagator, seed complex128, maxIter int) (complex128, bool) {
	lam := seed
	for range maxIter {
		a, da, _ := p.ADerivative(lam)
		if da == 0 || !mathutil.IsFiniteComplex(a) || !mathutil.IsFiniteComplex(da) {
			return lam, false
		}
		step := a / da
		next := lam - step
		if !mathutil.IsFiniteComplex(next) {
			return lam, false
		}
		lam = next
		if cmplx.Abs(step) <= newtonTolerance*(1+cmplx.Abs(lam)) {
			return lam, true
		}
	}
	return lam, false
}

// refineAll runs newton on every seed in parallel. Converged roots keep the
// seed order; failed counts the seeds that did not converge.
func refineAll(p *scatter.Propagator, seeds []complex128, maxIter, workers int) (roots []complex128, failed int) {
	res := make([]complex128, len(seeds))
	ok := make([]bool, len(seeds))
	_ = parallelFor(workers, len(seeds), func(i int) error {
		if mathutil.IsFiniteComplex(seeds[i]) {
			res[i], ok[i] = newton(p, seeds[i], maxIter)
		}
		return nil
	})
	roots = make([]complex128, 0, len(seeds))
	for i, r := range res {
		if ok[i] {
			roots = append(roots, r)
		} else {
			failed++
		}
	}
	return roots, failed
}
