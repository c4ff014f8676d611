package poly

import (
	"sync"

	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Operands shorter than this are multiplied directly; below it the O(n·m)
// loop beats three transforms.
const minLenForFFT = 48

// plans caches one complex FFT per power-of-two length. fourier.CmplxFFT keeps
// internal work buffers, so each cached plan is guarded by its own mutex.
var plans sync.Map // map[int]*plan

type plan struct {
	mu  sync.Mutex
	fft *fourier.CmplxFFT
}

func planFor(n int) *plan {
	if v, ok := plans.Load(n); ok {
		return v.(*plan)
	}
	v, _ := plans.LoadOrStore(n, &plan{fft: fourier.NewCmplxFFT(n)})
	return v.(*plan)
}

// mulFFT computes the linear convolution of p and q through zero-padded
// transforms: both operands are transformed, multiplied bin by bin with the
// SIMD kernel, and transformed back. gonum leaves the inverse unnormalised.
func mulFFT(p, q Poly) Poly {
	outLen := len(p) + len(q) - 1
	n := mathutil.NextPow2(outLen)

	pa := make([]complex128, n)
	qa := make([]complex128, n)
	copy(pa, p)
	copy(qa, q)

	pl := planFor(n)
	pl.mu.Lock()
	pf := pl.fft.Coefficients(nil, pa)
	qf := pl.fft.Coefficients(nil, qa)
	simdops.MulComplex(pf, pf, qf)
	seq := pl.fft.Sequence(nil, pf)
	pl.mu.Unlock()

	out := make(Poly, outLen)
	scale := complex(1/float64(n), 0)
	for k := range out {
		out[k] = seq[k] * scale
	}
	return out
}

// Forward returns the unnormalised DFT X_k = Σ x_j e^{-2πijk/n} of x.
func Forward(x []complex128) []complex128 {
	pl := planFor(len(x))
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.fft.Coefficients(nil, x)
}

// Backward returns the unnormalised inverse DFT x_j = Σ X_k e^{2πijk/n}.
func Backward(x []complex128) []complex128 {
	pl := planFor(len(x))
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.fft.Sequence(nil, x)
}
