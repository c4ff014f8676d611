package poly

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrDegeneratePolynomial is returned for polynomials without a non-zero
// coefficient.
var ErrDegeneratePolynomial = errors.New("degenerate polynomial")

// Root-finding limits.
const (
	// Newton polishing steps applied to every companion eigenvalue.
	polishSteps = 3

	// Durand–Kerner fallback limits.
	dkMaxIter   = 500
	dkTolerance = 1e-12

	// Leading coefficients below this fraction of the largest coefficient are
	// treated as zero, lowering the degree.
	leadingTolerance = 1e-14

	// Angle in radians by which the root set is turned before the real
	// embedding. Conjugate-symmetric root sets, such as those of a real
	// polynomial, would otherwise share eigenvalues with the spurious half.
	embedRotation = 0.5772156649015329
)

// Roots returns all roots of p. Eigenvalues of the companion matrix are
// computed through the real embedding [[Re C, -Im C], [Im C, Re C]], whose
// spectrum is eig(C) ∪ conj(eig(C)); the spurious conjugate half is discarded
// by residual. C belongs to p(w·e^{iθ}) rather than p so that no true root is
// the conjugate of another. When the eigen solver fails, Durand–Kerner
// iteration is used.
func Roots(p Poly) ([]complex128, error) {
	p = trimLeading(p)
	n := len(p) - 1
	if n < 0 {
		return nil, ErrDegeneratePolynomial
	}
	if n == 0 {
		return nil, nil
	}

	// Zero roots factor out exactly.
	var zeros int
	for zeros < n && p[zeros] == 0 {
		zeros++
	}
	roots := make([]complex128, zeros, n)
	p = p[zeros:]
	n = len(p) - 1
	if n == 0 {
		return roots, nil
	}

	found, ok := companionRoots(p)
	if !ok {
		var err error
		found, err = durandKerner(p)
		if err != nil {
			return nil, err
		}
	}
	for i, z := range found {
		found[i] = polish(p, z)
	}
	return append(roots, found...), nil
}

func trimLeading(p Poly) Poly {
	big := 0.0
	for _, c := range p {
		big = math.Max(big, cmplx.Abs(c))
	}
	if big == 0 {
		return nil
	}
	end := len(p)
	for end > 0 && cmplx.Abs(p[end-1]) <= leadingTolerance*big {
		end--
	}
	return p[:end]
}

func companionRoots(p Poly) ([]complex128, bool) {
	turn := cmplx.Exp(complex(0, embedRotation))
	rot := make(Poly, len(p))
	f := complex(1, 0)
	for k, c := range p {
		rot[k] = c * f
		f *= turn
	}
	found, ok := embeddedRoots(rot)
	if !ok {
		return nil, false
	}
	for i, w := range found {
		found[i] = w * turn
	}
	return found, true
}

// embeddedRoots returns the roots of p from the real embedding of its
// companion matrix. The twin retirement assumes no root of p is close to the
// conjugate of another.
func embeddedRoots(p Poly) ([]complex128, bool) {
	n := len(p) - 1
	lead := p[n]
	dim := 2 * n
	data := make([]float64, dim*dim)
	set := func(r, c int, v complex128) {
		data[r*dim+c] = real(v)
		data[r*dim+c+n] = -imag(v)
		data[(r+n)*dim+c] = imag(v)
		data[(r+n)*dim+c+n] = real(v)
	}
	for c := range n {
		set(0, c, -p[n-1-c]/lead)
	}
	for r := 1; r < n; r++ {
		set(r, r-1, 1)
	}

	var eig mat.Eigen
	if !eig.Factorize(mat.NewDense(dim, dim, data), mat.EigenNone) {
		return nil, false
	}
	vals := eig.Values(nil)

	type cand struct {
		z   complex128
		res float64
	}
	cands := make([]cand, len(vals))
	for i, z := range vals {
		cands[i] = cand{z: z, res: residual(p, z)}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].res < cands[j].res })

	used := make([]bool, len(cands))
	out := make([]complex128, 0, n)
	for i := 0; i < len(cands) && len(out) < n; i++ {
		if used[i] {
			continue
		}
		used[i] = true
		out = append(out, cands[i].z)
		// Retire the conjugate twin of the accepted eigenvalue.
		twin, best := -1, math.Inf(1)
		target := cmplx.Conj(cands[i].z)
		for j := range cands {
			if used[j] {
				continue
			}
			if d := cmplx.Abs(cands[j].z - target); d < best {
				twin, best = j, d
			}
		}
		if twin >= 0 {
			used[twin] = true
		}
	}
	return out, true
}

func residual(p Poly, z complex128) float64 {
	s := p.AbsSum(z)
	if s == 0 {
		return 0
	}
	return cmplx.Abs(p.Eval(z)) / s
}

func polish(p Poly, z complex128) complex128 {
	best, bestRes := z, residual(p, z)
	for range polishSteps {
		v, d := p.EvalDeriv(z)
		if d == 0 {
			break
		}
		z -= v / d
		if r := residual(p, z); r < bestRes {
			best, bestRes = z, r
		}
	}
	return best
}

// durandKerner finds all roots simultaneously with the Weierstrass iteration
// z_i ← z_i - p(z_i) / Π_{j≠i}(z_i - z_j), started on a spiral of radius
// bounded by the Cauchy bound.
func durandKerner(p Poly) ([]complex128, error) {
	n := len(p) - 1
	lead := p[n]
	monic := make(Poly, len(p))
	radius := 0.0
	for k, c := range p {
		monic[k] = c / lead
		if k < n {
			radius = math.Max(radius, cmplx.Abs(monic[k]))
		}
	}
	radius = 1 + radius

	z := make([]complex128, n)
	seed := complex(0.4, 0.9)
	cur := complex(1, 0)
	for i := range z {
		z[i] = cur * complex(radius*0.5, 0)
		cur *= seed
	}

	for range dkMaxIter {
		maxDelta := 0.0
		for i := range z {
			den := complex(1, 0)
			for j := range z {
				if i != j {
					den *= z[i] - z[j]
				}
			}
			if den == 0 {
				den = complex(dkTolerance, 0)
			}
			delta := monic.Eval(z[i]) / den
			z[i] -= delta
			maxDelta = math.Max(maxDelta, cmplx.Abs(delta))
		}
		if maxDelta < dkTolerance {
			return z, nil
		}
	}
	for _, v := range z {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, ErrDegeneratePolynomial
		}
	}
	return z, nil
}
