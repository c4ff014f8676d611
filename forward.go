package nft

import (
	"math"

	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/scatter"
)

// ForwardResult holds the nonlinear Fourier spectrum of a vanishing potential.
// Arrays the options did not request are nil.
type ForwardResult struct {
	Status Status

	// Xi are the frequency nodes of the continuous spectrum.
	Xi []float64

	Reflection []complex128
	A          []complex128
	B          []complex128

	// DegenerateNodes lists the nodes where a(ξ) vanished. Their reflection
	// coefficient is 0.
	DegenerateNodes []int

	// BoundStates are ordered by real part, then imaginary part. Coefficient
	// arrays share their order.
	BoundStates      []complex128
	NormingConstants []complex128
	Residues         []complex128

	// BoundStatesFound counts bound states before truncation to kMax.
	BoundStatesFound int

	// DroppedSeeds counts Newton seeds that did not converge.
	DroppedSeeds int
}

// Forward computes the nonlinear Fourier transform of D ≥ 2 samples q of a
// potential that vanishes outside tw, with the first and last sample at T1 and
// T2. The continuous spectrum is evaluated on fw; at most kMax bound states
// are reported. opts may be nil.
func Forward(q []complex128, tw TimeWindow, fw FrequencyWindow, kMax int, kappa Kappa, opts *ForwardOptions) (*ForwardResult, error) {
	p, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if err := validateSamples(q, 2); err != nil {
		return nil, err
	}
	if err := tw.validate(); err != nil {
		return nil, err
	}
	if err := fw.validate(); err != nil {
		return nil, err
	}
	if err := kappa.validate(); err != nil {
		return nil, err
	}
	if kMax < 0 {
		return nil, invalidf("kMax must be non-negative, got %d", kMax)
	}
	if p.richardson && len(q) < minRichardsonSamples {
		return nil, invalidf("Richardson extrapolation needs at least %d samples, got %d", minRichardsonSamples, len(q))
	}

	prop, err := scatter.NewVanishing(q, tw.T1, tw.T2, float64(kappa), p.scheme, p.normalize)
	if err != nil {
		return nil, classify(err)
	}
	p.continuous.Xi = nodes(fw)
	p.discrete.KMax = kMax

	cont, disc, err := spectra(prop, p)
	if err != nil {
		return nil, err
	}

	if p.richardson {
		coarse := make([]complex128, 0, (len(q)+1)/2)
		for n := 0; n < len(q); n += 2 {
			coarse = append(coarse, q[n])
		}
		h := prop.H()
		t2 := tw.T1 + 2*h*float64(len(coarse)-1)
		cprop, err := scatter.NewVanishing(coarse, tw.T1, t2, float64(kappa), p.scheme, p.normalize)
		if err != nil {
			return nil, classify(err)
		}
		cp := *p
		cp.discrete.KMax = -1
		ccont, cdisc, err := spectra(cprop, &cp)
		if err != nil {
			return nil, err
		}
		rich := engine.Richardson{Order: p.scheme.Order}
		if cont != nil {
			rich.Continuous(cont, ccont)
		}
		if disc != nil {
			rich.BoundStates(disc, cdisc, math.Pi/(4*h))
		}
	}

	res := &ForwardResult{}
	if cont != nil {
		res.Xi = p.continuous.Xi
		res.Reflection, res.A, res.B = cont.Reflection, cont.A, cont.B
		res.DegenerateNodes = cont.Degenerate
		if len(cont.Degenerate) > 0 {
			res.Status |= StatusDegenerate
		}
	}
	if disc != nil {
		res.BoundStates = disc.BoundStates
		res.NormingConstants = disc.NormingConstants
		res.Residues = disc.Residues
		res.BoundStatesFound = disc.Found
		res.DroppedSeeds = disc.Unconverged
		if disc.Truncated {
			res.Status |= StatusCapacityExceeded
		}
		if disc.Unconverged > 0 {
			res.Status |= StatusNonConvergence
		}
	}
	return res, nil
}

// spectra runs the requested sweeps on one propagator.
func spectra(prop *scatter.Propagator, p *forwardParams) (*engine.Continuous, *engine.Discrete, error) {
	var (
		cont *engine.Continuous
		disc *engine.Discrete
		err  error
	)
	if !p.skipContinuous {
		if cont, err = engine.ContinuousSpectrum(prop, p.continuous); err != nil {
			return nil, nil, classify(err)
		}
	}
	if !p.skipDiscrete {
		if disc, err = engine.DiscreteSpectrum(prop, p.discrete); err != nil {
			return nil, nil, classify(err)
		}
	}
	return cont, disc, nil
}

func nodes(fw FrequencyWindow) []float64 {
	return engine.Nodes(fw.Xi1, fw.Xi2, fw.M)
}
