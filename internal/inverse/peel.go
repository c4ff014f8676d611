package inverse

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/poly"
)

// peel recovers d samples from the first column [A; B] of the polynomial
// transfer matrix P(z) = C_{d-1}·G···G·C_0. Each layer is
// C_n = s·[[1, Γ], [-κΓ*, 1]], s = 1/√(1+κ|Γ|²), with Γ_n = -κ·conj(B(0)/A(0)).
func peel(a, b poly.Poly, d int, id discretization.ID, h, kappa float64) ([]complex128, error) {
	ca := make([]complex128, d)
	cb := make([]complex128, d)
	copy(ca, a)
	copy(cb, b)

	q := make([]complex128, d)
	k := complex(kappa, 0)
	for n := d - 1; n >= 0; n-- {
		if ca[0] == 0 {
			return nil, fmt.Errorf("%w: A(0) vanishes at layer %d", ErrNotPeelable, n)
		}
		g := -k * cmplx.Conj(cb[0]/ca[0])
		norm := 1 + kappa*real(g*cmplx.Conj(g))
		if !(norm > 0) || math.IsInf(norm, 0) {
			return nil, fmt.Errorf("%w: |Γ| = %g at layer %d", ErrNotPeelable, cmplx.Abs(g), n)
		}
		qn, err := discretization.SampleFromReflection(id, g, h, kappa)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %d: %w", ErrNotPeelable, n, err)
		}
		q[n] = qn
		if n == 0 {
			break
		}

		s := complex(1/math.Sqrt(norm), 0)
		gc := k * cmplx.Conj(g)
		// A' = s(A - ΓB), z·B' = s(κΓ*A + B); the constant term of z·B'
		// vanishes by the choice of Γ.
		na := make([]complex128, n)
		nb := make([]complex128, n)
		for i := range n {
			na[i] = s * (ca[i] - g*cb[i])
			nb[i] = s * (gc*ca[i+1] + cb[i+1])
		}
		ca, cb = na, nb
	}
	return q, nil
}
