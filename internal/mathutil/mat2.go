// Package mathutil provides the small dense linear algebra and special functions
// shared by the scattering kernels.
package mathutil

import (
	"math"
	"math/cmplx"
)

// Mat2 is a 2×2 complex matrix stored row-major: [m11, m12, m21, m22].
type Mat2 [4]complex128

// Vec2 is a complex column vector.
type Vec2 [2]complex128

// Identity returns the 2×2 identity matrix.
func Identity() Mat2 {
	return Mat2{1, 0, 0, 1}
}

// Diag returns diag(d1, d2).
func Diag(d1, d2 complex128) Mat2 {
	return Mat2{d1, 0, 0, d2}
}

// Mul returns m·n.
func (m Mat2) Mul(n Mat2) Mat2 {
	return Mat2{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
	}
}

// Add returns m+n.
func (m Mat2) Add(n Mat2) Mat2 {
	return Mat2{m[0] + n[0], m[1] + n[1], m[2] + n[2], m[3] + n[3]}
}

// Scale returns s·m.
func (m Mat2) Scale(s complex128) Mat2 {
	return Mat2{s * m[0], s * m[1], s * m[2], s * m[3]}
}

// Det returns the determinant.
func (m Mat2) Det() complex128 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inv returns the inverse through the adjugate. A singular matrix yields
// non-finite entries; callers check with IsFinite.
func (m Mat2) Inv() Mat2 {
	det := m.Det()
	return Mat2{m[3] / det, -m[1] / det, -m[2] / det, m[0] / det}
}

// Trace returns m11 + m22.
func (m Mat2) Trace() complex128 {
	return m[0] + m[3]
}

// Apply returns m·v.
func (m Mat2) Apply(v Vec2) Vec2 {
	return Vec2{m[0]*v[0] + m[1]*v[1], m[2]*v[0] + m[3]*v[1]}
}

// MaxAbs returns the largest entry modulus.
func (m Mat2) MaxAbs() float64 {
	best := 0.0
	for _, v := range m {
		if a := cmplx.Abs(v); a > best {
			best = a
		}
	}
	return best
}

// Norm returns the Euclidean norm of v.
func (v Vec2) Norm() float64 {
	return math.Hypot(cmplx.Abs(v[0]), cmplx.Abs(v[1]))
}

// Scale returns s·v.
func (v Vec2) Scale(s complex128) Vec2 {
	return Vec2{s * v[0], s * v[1]}
}

// Dual2 carries a matrix together with its derivative with respect to the
// spectral parameter.
type Dual2 struct {
	V Mat2
	D Mat2
}

// DualIdentity returns the identity with zero derivative.
func DualIdentity() Dual2 {
	return Dual2{V: Identity()}
}

// Mul applies the product rule: (AB)' = A'B + AB'.
func (x Dual2) Mul(y Dual2) Dual2 {
	return Dual2{
		V: x.V.Mul(y.V),
		D: x.D.Mul(y.V).Add(x.V.Mul(y.D)),
	}
}

// Add sums values and derivatives.
func (x Dual2) Add(y Dual2) Dual2 {
	return Dual2{V: x.V.Add(y.V), D: x.D.Add(y.D)}
}

// Scale multiplies value and derivative by a constant.
func (x Dual2) Scale(s complex128) Dual2 {
	return Dual2{V: x.V.Scale(s), D: x.D.Scale(s)}
}

// IsFiniteComplex reports whether both parts of z are finite.
func IsFiniteComplex(z complex128) bool {
	re, im := real(z), imag(z)
	return !math.IsNaN(re) && !math.IsInf(re, 0) && !math.IsNaN(im) && !math.IsInf(im, 0)
}
