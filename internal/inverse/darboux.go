package inverse

import (
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/scatter"
)

// addBoundState applies one Darboux transform to q so that λ becomes a bound
// state with norming constant b. Existing bound states keep their norming
// constants and the reflection coefficient picks up (ξ-λ*)/(ξ-λ).
func addBoundState(q []complex128, t1, t2 float64, scheme *discretization.Scheme, lam, b complex128) ([]complex128, error) {
	p, err := scatter.NewVanishing(q, t1, t2, 1, scheme, true)
	if err != nil {
		return nil, err
	}
	j := p.JostAtSamples(lam)
	gain := 4 * imag(lam)

	out := make([]complex128, len(q))
	for n := range q {
		v := seedVector(j.Phi[n], j.LogPhi[n], j.Psi[n], j.LogPsi[n], b)
		den := real(v[0]*cmplx.Conj(v[0])) + real(v[1]*cmplx.Conj(v[1]))
		out[n] = q[n]
		if den > 0 {
			out[n] += complex(gain/den, 0) * v[0] * cmplx.Conj(v[1])
		}
	}
	return out, nil
}

// seedVector returns a multiple of φ - b·ψ, where φ = Φ·e^{lφ} and ψ = Ψ·e^{lψ}
// are stored as unit vectors with log magnitudes. The larger term is scaled
// to unit size so neither exponential overflows.
func seedVector(phi mathutil.Vec2, lphi complex128, psi mathutil.Vec2, lpsi complex128, b complex128) mathutil.Vec2 {
	if b == 0 {
		return phi
	}
	lb := cmplx.Log(b)
	var wPhi, wPsi complex128
	if real(lphi) >= real(lpsi)+real(lb) {
		wPhi, wPsi = 1, -cmplx.Exp(lpsi+lb-lphi)
	} else {
		wPhi, wPsi = cmplx.Exp(lphi-lpsi-lb), -1
	}
	return mathutil.Vec2{
		wPhi*phi[0] + wPsi*psi[0],
		wPhi*phi[1] + wPsi*psi[1],
	}
}
