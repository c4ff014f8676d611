package discretization

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/mathutil"
)

// ErrUnpeelable is returned when a layer reflection parameter has no
// preimage sample (|Γ| ≥ 1 for defocusing potentials).
var ErrUnpeelable = errors.New("layer reflection parameter out of range")

// Polynomial form.
//
// A Strang-A step factors as U_n = e^{hΛ/2}·C_n·e^{hΛ/2} with C_n independent
// of λ. Writing e^{hΛ} = e^{-iλh}·diag(1, z), z = e^{2iλh}, the product of D
// steps becomes a scalar phase times e^{hΛ/2}·P(z)·e^{hΛ/2} with
//
//	P(z) = C_{D-1}·G·C_{D-2}·G···G·C_0,   G = diag(1, z),
//
// a 2×2 matrix of polynomials of degree D-1. Upper half-plane λ maps to |z| < 1.

// PolyFactor returns the middle factor C_n for scheme id: the modal factor for
// 2SPLIT2_MODAL and the exact e^{hQ_n} for every other scheme.
func PolyFactor(id ID, q complex128, h, kappa float64) (mathutil.Mat2, error) {
	if id == Split2Modal {
		return ModalFactor(q, h, kappa)
	}
	return ExpQ(q, h, kappa), nil
}

// LambdaFromZ maps z = e^{2iλh} back to λ = log(z)/(2ih), choosing Re λ in
// (-π/2h, π/2h].
func LambdaFromZ(z complex128, h float64) complex128 {
	return cmplx.Log(z) / complex(0, 2*h)
}

// ReflectionParam returns Γ_n, the off-diagonal ratio of C_n
// (C_n ∝ [[1, Γ], [-κΓ*, 1]]).
func ReflectionParam(id ID, q complex128, h, kappa float64) complex128 {
	if id == Split2Modal {
		return complex(h, 0) * q
	}
	mag := cmplx.Abs(q)
	if mag == 0 {
		return 0
	}
	var g float64
	if kappa > 0 {
		g = math.Tan(h * mag)
	} else {
		g = math.Tanh(h * mag)
	}
	return q * complex(g/mag, 0)
}

// SampleFromReflection inverts ReflectionParam.
func SampleFromReflection(id ID, gamma complex128, h, kappa float64) (complex128, error) {
	if id == Split2Modal {
		return gamma / complex(h, 0), nil
	}
	mag := cmplx.Abs(gamma)
	if mag == 0 {
		return 0, nil
	}
	var qa float64
	if kappa > 0 {
		qa = math.Atan(mag) / h
	} else {
		if mag >= 1 {
			return 0, ErrUnpeelable
		}
		qa = math.Atanh(mag) / h
	}
	return gamma * complex(qa/mag, 0), nil
}
