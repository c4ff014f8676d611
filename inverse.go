package nft

import (
	"fmt"
	"math"

	"github.com/tphakala/go-nft/internal/inverse"
)

// InverseResult holds a reconstructed potential.
type InverseResult struct {
	Status Status

	// Q holds D samples on the vanishing grid of the time window.
	Q []complex128

	// Iterations and Residual report IterativeDefectCorrection; Residual is
	// max|R - R[q]| over the continuous part.
	Iterations int
	Residual   float64
}

// InverseXi returns the frequency window Inverse expects for d samples on tw
// and m ≥ d nodes. Its nodes map to the m-th roots of unity of z = e^{2iξh}.
// dis must be Split2A, Split2Modal or zero for the default.
func InverseXi(d int, tw TimeWindow, m int, dis Discretization) (FrequencyWindow, error) {
	if err := checkInverseScheme(&dis); err != nil {
		return FrequencyWindow{}, err
	}
	if err := tw.validate(); err != nil {
		return FrequencyWindow{}, err
	}
	xi1, xi2, err := inverse.Xi(d, tw.T1, tw.T2, m)
	if err != nil {
		return FrequencyWindow{}, classify(err)
	}
	return FrequencyWindow{Xi1: xi1, Xi2: xi2, M: m}, nil
}

// Inverse reconstructs d samples of a vanishing potential on tw from its
// continuous spectrum on fw, which must equal InverseXi(d, tw, fw.M, ...), and
// its bound states with their coefficients. contspec may be nil for a
// reflectionless potential. Bound states require the focusing problem.
func Inverse(contspec []complex128, fw FrequencyWindow, boundStates, coeffs []complex128, d int, tw TimeWindow, kappa Kappa, opts *InverseOptions) (*InverseResult, error) {
	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if err := kappa.validate(); err != nil {
		return nil, err
	}
	if err := tw.validate(); err != nil {
		return nil, err
	}
	if err := fw.validate(); err != nil {
		return nil, err
	}
	if contspec != nil {
		if len(contspec) != fw.M {
			return nil, invalidf("continuous spectrum has %d values for %d nodes", len(contspec), fw.M)
		}
		for j, v := range contspec {
			if !isFinite(v) {
				return nil, invalidf("continuous spectrum value %d is not finite", j)
			}
		}
	}
	if err := inverse.CheckWindow(d, tw.T1, tw.T2, fw.M, fw.Xi1, fw.Xi2); err != nil {
		return nil, classify(err)
	}
	if len(boundStates) != len(coeffs) {
		return nil, invalidf("%d bound states with %d coefficients", len(boundStates), len(coeffs))
	}
	if len(boundStates) > 0 && kappa != Focusing {
		return nil, invalidf("bound states require the focusing problem")
	}
	for k, lam := range boundStates {
		if !isFinite(lam) || !(imag(lam) > 0) {
			return nil, invalidf("bound state %d = %v must be finite with positive imaginary part", k, lam)
		}
		if !isFinite(coeffs[k]) || coeffs[k] == 0 {
			return nil, invalidf("coefficient %d must be finite and non-zero", k)
		}
	}

	out, err := inverse.Run(&inverse.Request{
		Spectrum:     contspec,
		Xi1:          fw.Xi1,
		Xi2:          fw.Xi2,
		M:            fw.M,
		Input:        p.input,
		Method:       p.method,
		BoundStates:  boundStates,
		Coefficients: coeffs,
		Residues:     p.residues,
		D:            d,
		T1:           tw.T1,
		T2:           tw.T2,
		Kappa:        float64(kappa),
		Scheme:       p.scheme,
		MaxIter:      p.maxIter,
		Tolerance:    p.tolerance,
		Oversampling: p.oversampling,
		Workers:      p.workers,
	})
	if err != nil {
		return nil, classify(err)
	}
	for n, v := range out.Q {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: sample %d of the reconstruction is not finite", ErrFatal, n)
		}
	}

	res := &InverseResult{Q: out.Q, Iterations: out.Iterations, Residual: out.Residual}
	if !out.Converged || math.IsInf(out.Residual, 0) {
		res.Status |= StatusNonConvergence
	}
	return res, nil
}
