// Package poly implements complex polynomial arithmetic for the polynomial
// form of split-step transfer matrices: FFT-accelerated products, 2×2
// polynomial matrix product trees, and root finding.
package poly

import (
	"math/cmplx"
)

// Poly holds coefficients in ascending order: p(z) = Σ p[k]·z^k.
type Poly []complex128

// Degree returns the index of the last non-zero coefficient, or -1 for the
// zero polynomial.
func (p Poly) Degree() int {
	for k := len(p) - 1; k >= 0; k-- {
		if p[k] != 0 {
			return k
		}
	}
	return -1
}

// Eval evaluates p at z with Horner's scheme.
func (p Poly) Eval(z complex128) complex128 {
	var acc complex128
	for k := len(p) - 1; k >= 0; k-- {
		acc = acc*z + p[k]
	}
	return acc
}

// EvalDeriv evaluates p and p' at z in one Horner pass.
func (p Poly) EvalDeriv(z complex128) (v, d complex128) {
	for k := len(p) - 1; k >= 0; k-- {
		d = d*z + v
		v = v*z + p[k]
	}
	return v, d
}

// AbsSum evaluates Σ |p_k|·|z|^k, the scale against which the residual
// |p(z)| of a computed root is judged.
func (p Poly) AbsSum(z complex128) float64 {
	r := cmplx.Abs(z)
	acc := 0.0
	for k := len(p) - 1; k >= 0; k-- {
		acc = acc*r + cmplx.Abs(p[k])
	}
	return acc
}

// Add returns p + q.
func Add(p, q Poly) Poly {
	n := max(len(p), len(q))
	out := make(Poly, n)
	copy(out, p)
	for k, v := range q {
		out[k] += v
	}
	return out
}

// Shift returns z·p.
func Shift(p Poly) Poly {
	out := make(Poly, len(p)+1)
	copy(out[1:], p)
	return out
}

// Scale returns s·p.
func Scale(p Poly, s complex128) Poly {
	out := make(Poly, len(p))
	for k, v := range p {
		out[k] = s * v
	}
	return out
}

// Mul returns p·q, switching to FFT multiplication for long operands.
func Mul(p, q Poly) Poly {
	if len(p) == 0 || len(q) == 0 {
		return Poly{}
	}
	if min(len(p), len(q)) < minLenForFFT {
		return mulDirect(p, q)
	}
	return mulFFT(p, q)
}

func mulDirect(p, q Poly) Poly {
	out := make(Poly, len(p)+len(q)-1)
	for i, a := range p {
		if a == 0 {
			continue
		}
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}
