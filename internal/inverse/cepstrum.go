package inverse

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/poly"
)

// The m frequency nodes map to z_j = -w^j, w = e^{2πi/m}. A function sampled
// there expands as f(z_j) = Σ_k c_k z_j^k with c_k = (-1)^k·DFT(f)_k / m.

// nodeCoefficients returns c_k for k < n from samples at the nodes.
func nodeCoefficients(f []complex128, n int) poly.Poly {
	m := len(f)
	spec := poly.Forward(f)
	out := make(poly.Poly, min(n, m))
	for k := range out {
		out[k] = alternate(k) * spec[k] / complex(float64(m), 0)
	}
	return out
}

// minimumPhase returns the power series of the function A that is analytic
// and zero-free in the unit disc with |A(z_j)|² = mag2_j, truncated to d
// coefficients, together with A at the nodes.
//
// |A|² of a polynomial A of degree below m/2 is a trigonometric polynomial
// the nodes determine exactly, so it is interpolated onto nextPow2(osf·m)
// points of the unit circle before the logarithm is taken. The cepstrum of a
// zero at distance ε from the circle decays like (1-ε)^k and would otherwise
// alias at k = m.
func minimumPhase(mag2 []float64, d, osf int) (coeffs poly.Poly, atNodes []complex128) {
	m := len(mag2)
	n := mathutil.NextPow2(max(osf, 1) * m)
	alpha := logSeries(mag2, n)

	// z_j^{k+m} = (-1)^m·z_j^k folds the series onto m terms.
	folded := make([]complex128, m)
	for k, a := range alpha {
		folded[k%m] += alternate(k) * a
	}
	atNodes = poly.Backward(folded)
	for j, v := range atNodes {
		atNodes[j] = cmplx.Exp(v)
	}

	circle := poly.Backward(alpha)
	for j, v := range circle {
		circle[j] = cmplx.Exp(v)
	}
	spec := poly.Forward(circle)
	coeffs = make(poly.Poly, min(d, n))
	for k := range coeffs {
		coeffs[k] = spec[k] / complex(float64(n), 0)
	}
	return coeffs, atNodes
}

// logSeries returns n coefficients of log A(z) = Σ α_k z^k. When the
// interpolated |A|² is not positive on the whole circle the cepstrum is taken
// from the m nodes alone.
func logSeries(mag2 []float64, n int) poly.Poly {
	m := len(mag2)
	g := make([]complex128, m)
	for j, v := range mag2 {
		g[j] = complex(v, 0)
	}
	c := nodeCoefficients(g, m)

	// Centre the m-periodic coefficients on frequencies in [-m/2, m/2].
	fine := make([]complex128, n)
	wrap := alternate(m)
	for k, ck := range c {
		switch {
		case 2*k < m:
			fine[k] += ck
		case 2*k > m:
			fine[n-(m-k)] += wrap * ck
		default:
			fine[k] += ck / 2
			fine[n-k] += wrap * ck / 2
		}
	}
	vals := poly.Backward(fine)
	u := make([]complex128, n)
	for l, v := range vals {
		r := real(v)
		if !(r > 0) || math.IsInf(r, 0) {
			return nodeLogSeries(mag2, n)
		}
		u[l] = complex(0.5*math.Log(r), 0)
	}
	return analytic(poly.Forward(u), n)
}

// nodeLogSeries takes the cepstrum of the node values directly.
func nodeLogSeries(mag2 []float64, n int) poly.Poly {
	m := len(mag2)
	u := make([]complex128, m)
	for j, v := range mag2 {
		u[j] = complex(0.5*math.Log(v), 0)
	}
	c := nodeCoefficients(u, m)
	for k := range c {
		c[k] *= complex(float64(m), 0)
	}
	alpha := analytic(c, m)
	out := make(poly.Poly, n)
	copy(out, alpha)
	return out
}

// analytic turns the unnormalised spectrum of a real function on n points of
// the circle into the power series of the function analytic in the disc
// whose real part it is: the constant term is kept, positive frequencies are
// doubled and negative ones dropped.
func analytic(spec []complex128, n int) poly.Poly {
	alpha := make(poly.Poly, n)
	scale := 1 / float64(n)
	for k := range n {
		switch {
		case k == 0:
			alpha[k] = complex(real(spec[k])*scale, 0)
		case 2*k < n:
			alpha[k] = 2 * spec[k] * complex(scale, 0)
		case 2*k == n:
			alpha[k] = spec[k] * complex(scale, 0)
		}
	}
	return alpha
}

func alternate(k int) complex128 {
	if k%2 == 1 {
		return -1
	}
	return 1
}
