package nft

import (
	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/scatter"
)

// PeriodicResult holds the main and auxiliary spectra of one period, each in
// canonical order (real part, then imaginary part).
type PeriodicResult struct {
	Status Status

	// Main holds the points where the Floquet discriminant Δ = tr M/2 is ±1.
	Main []complex128

	// Aux holds the zeros of the monodromy entry M12.
	Aux []complex128
}

// Periodic computes the main and auxiliary spectrum of a potential with
// period T2-T1 sampled at T1 + n·(T2-T1)/D. opts may be nil.
func Periodic(q []complex128, tw TimeWindow, kappa Kappa, opts *PeriodicOptions) (*PeriodicResult, error) {
	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if err := validateSamples(q, 1); err != nil {
		return nil, err
	}
	if err := tw.validate(); err != nil {
		return nil, err
	}
	if err := kappa.validate(); err != nil {
		return nil, err
	}

	prop, err := scatter.NewPeriodic(q, tw.T1, tw.T2, float64(kappa), p.scheme, p.normalize)
	if err != nil {
		return nil, classify(err)
	}
	spec, err := engine.PeriodicSpectrum(prop, p.req)
	if err != nil {
		return nil, classify(err)
	}

	res := &PeriodicResult{Main: spec.Main, Aux: spec.Aux}
	if spec.Truncated {
		res.Status |= StatusCapacityExceeded
	}
	return res, nil
}
