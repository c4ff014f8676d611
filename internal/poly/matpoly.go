package poly

import "github.com/tphakala/go-nft/internal/mathutil"

// MatPoly is a 2×2 matrix of polynomials, row-major like mathutil.Mat2.
type MatPoly [4]Poly

// Constant lifts a scalar matrix.
func Constant(m mathutil.Mat2) MatPoly {
	return MatPoly{{m[0]}, {m[1]}, {m[2]}, {m[3]}}
}

// Mul returns a·b.
func (a MatPoly) Mul(b MatPoly) MatPoly {
	return MatPoly{
		Add(Mul(a[0], b[0]), Mul(a[1], b[2])),
		Add(Mul(a[0], b[1]), Mul(a[1], b[3])),
		Add(Mul(a[2], b[0]), Mul(a[3], b[2])),
		Add(Mul(a[2], b[1]), Mul(a[3], b[3])),
	}
}

// shiftLower returns diag(1, z)·a.
func (a MatPoly) shiftLower() MatPoly {
	return MatPoly{a[0], a[1], Shift(a[2]), Shift(a[3])}
}

// Eval evaluates every entry at z.
func (a MatPoly) Eval(z complex128) mathutil.Mat2 {
	return mathutil.Mat2{a[0].Eval(z), a[1].Eval(z), a[2].Eval(z), a[3].Eval(z)}
}

// ChainProduct returns P(z) = C_{D-1}·G·C_{D-2}·G···G·C_0 with G = diag(1, z).
// The product is formed as a balanced tree so that the long multiplications
// near the root run through the FFT path.
func ChainProduct(factors []mathutil.Mat2) MatPoly {
	if len(factors) == 0 {
		return Constant(mathutil.Identity())
	}
	return chain(factors, 0, len(factors))
}

func chain(factors []mathutil.Mat2, lo, hi int) MatPoly {
	if hi-lo == 1 {
		return Constant(factors[lo])
	}
	mid := lo + (hi-lo)/2
	right := chain(factors, lo, mid)
	left := chain(factors, mid, hi)
	return left.Mul(right.shiftLower())
}
