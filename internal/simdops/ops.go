// Package simdops routes the vector kernels used by the transform engines
// through tphakala/simd. Complex samples are handled either natively (c128)
// or as split real/imaginary float64 planes (f64).
package simdops

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/cpu"
	"github.com/tphakala/simd/f64"
)

// MulComplex computes dst[i] = a[i]·b[i].
func MulComplex(dst, a, b []complex128) {
	c128.Mul(dst, a, b)
}

// Sum returns Σ a[i].
func Sum(a []float64) float64 {
	return f64.Sum(a)
}

// Scale computes dst[i] = a[i]·s.
func Scale(dst, a []float64, s float64) {
	f64.Scale(dst, a, s)
}

// ConvolveValid computes the valid correlation dst[n] = Σ_k signal[n+k]·kernel[k],
// len(dst) = len(signal) - len(kernel) + 1.
func ConvolveValid(dst, signal, kernel []float64) {
	f64.ConvolveValid(dst, signal, kernel)
}

// Split separates complex samples into real and imaginary planes.
func Split(z []complex128) (re, im []float64) {
	re = make([]float64, len(z))
	im = make([]float64, len(z))
	for i, v := range z {
		re[i], im[i] = real(v), imag(v)
	}
	return re, im
}

// Info describes the SIMD features detected at run time.
func Info() string {
	return cpu.Info()
}
