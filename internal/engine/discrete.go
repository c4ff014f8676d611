package engine

import (
	"math"
	"math/cmplx"
	"slices"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/poly"
	"github.com/tphakala/go-nft/internal/scatter"
	"gonum.org/v1/gonum/cmplxs"
)

// Localization selects how bound-state candidates are found.
type Localization int

const (
	// FastEigenvalue takes the roots of the polynomial a(z) of the full
	// potential and refines them with Newton's method. Potentials longer than
	// maxFastEigenvalue samples are decimated first.
	FastEigenvalue Localization = iota

	// Newton refines seeds with Newton's method on a(λ).
	Newton

	// SubsampleAndRefine runs FastEigenvalue on a decimated potential and
	// refines the candidates with Newton's method at full resolution.
	SubsampleAndRefine
)

// Filtering selects which candidates survive.
type Filtering int

const (
	// FilterNone keeps every finite candidate.
	FilterNone Filtering = iota

	// FilterBasic keeps candidates inside the plausibility box.
	FilterBasic

	// FilterFull additionally merges near-duplicates.
	FilterFull
)

// DiscreteRequest configures a bound-state search.
type DiscreteRequest struct {
	Localization Localization
	Filtering    Filtering

	// Scheme selects the polynomial form used for eigenvalue localization.
	Scheme discretization.ID

	// Niter caps the Newton iterations per candidate.
	Niter int

	// Seeds are Newton starting points. A default lattice is used when empty.
	Seeds []complex128

	// KMax caps the number of reported bound states.
	KMax int

	Norming  bool
	Residues bool

	Workers int
}

// Discrete holds the located bound states and their coefficients.
type Discrete struct {
	BoundStates      []complex128
	NormingConstants []complex128
	Residues         []complex128

	// Found counts the surviving bound states before truncation to KMax.
	Found     int
	Truncated bool

	// Unconverged counts caller-supplied seeds dropped by Newton's method.
	Unconverged int
}

// sort orders the bound states like sortSpectrum and permutes the
// coefficients with them.
func (d *Discrete) sort() {
	idx := make([]int, len(d.BoundStates))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return compareSpectral(d.BoundStates[i], d.BoundStates[j])
	})
	d.BoundStates = permute(d.BoundStates, idx)
	d.NormingConstants = permute(d.NormingConstants, idx)
	d.Residues = permute(d.Residues, idx)
}

func permute(s []complex128, idx []int) []complex128 {
	if s == nil {
		return nil
	}
	out := make([]complex128, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}

// DiscreteSpectrum locates the zeros of a(λ) in the upper half-plane. The
// defocusing problem has none.
func DiscreteSpectrum(p *scatter.Propagator, req DiscreteRequest) (*Discrete, error) {
	out := &Discrete{}
	if p.Kappa() < 0 {
		return out, nil
	}
	q, h := p.Samples(), p.H()
	amp := cmplx.Abs(cmplxs.MaxAbs(q))

	var cands []complex128
	switch req.Localization {
	case FastEigenvalue:
		var err error
		cands, err = localize(p, q, h, amp, req, maxFastEigenvalue)
		if err != nil {
			return nil, err
		}

	case Newton:
		seeds, counted := req.Seeds, true
		if len(seeds) == 0 {
			seeds, counted = defaultSeeds(h, amp), false
		}
		var failed int
		cands, failed = refineAll(p, seeds, req.Niter, req.Workers)
		if counted {
			out.Unconverged = failed
		}

	case SubsampleAndRefine:
		var err error
		cands, err = localize(p, q, h, amp, req, subsampleSize(len(q)))
		if err != nil {
			return nil, err
		}
	}

	cands = screen(cands, req.Filtering, h, amp)
	out.Found = len(cands)
	if req.KMax >= 0 && len(cands) > req.KMax {
		cands = cands[:req.KMax]
		out.Truncated = true
	}
	out.BoundStates = cands

	if req.Norming {
		out.NormingConstants = make([]complex128, len(cands))
	}
	if req.Residues {
		out.Residues = make([]complex128, len(cands))
	}
	err := parallelFor(req.Workers, len(cands), func(k int) error {
		b := p.NormingConstant(cands[k])
		if req.Norming {
			out.NormingConstants[k] = b
		}
		if req.Residues {
			_, da, ls := p.ADerivative(cands[k])
			out.Residues[k] = b / (da * cmplx.Exp(complex(ls, 0)))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// localize takes the roots of a(z) on at most size samples of q and refines
// them with Newton's method on the full grid. Roots that do not converge are
// dropped.
func localize(p *scatter.Propagator, q []complex128, h, amp float64, req DiscreteRequest, size int) ([]complex128, error) {
	sub, hSub := q, h
	if len(q) > size {
		var err error
		sub, hSub, err = subsample(q, h, false, size)
		if err != nil {
			return nil, err
		}
	}
	roots, err := aRoots(sub, hSub, p.Kappa(), req.Scheme)
	if err != nil {
		return nil, err
	}
	if req.Filtering != FilterNone && len(sub) < len(q) {
		roots = screen(roots, FilterBasic, hSub, amp)
	}
	cands, _ := refineAll(p, roots, req.Niter, req.Workers)
	return cands, nil
}

// aRoots returns the roots of a(λ) of the polynomial form, mapped to λ.
func aRoots(q []complex128, h, kappa float64, id discretization.ID) ([]complex128, error) {
	pm, err := transferPoly(q, h, kappa, id)
	if err != nil {
		return nil, err
	}
	roots, err := poly.Roots(pm[0])
	if err != nil {
		return nil, err
	}
	return rootsToLambda(roots, h), nil
}

// defaultSeeds spreads Newton seeds over the part of the plausibility box
// where bound states of a potential with peak amplitude amp can sit.
func defaultSeeds(h, amp float64) []complex128 {
	if amp == 0 {
		return nil
	}
	reach := math.Min(0.9*math.Pi/(2*h), 2*(1+amp))
	seeds := make([]complex128, 0, seedsReal*seedsImag)
	for i := range seedsReal {
		re := -reach + 2*reach*float64(i)/float64(seedsReal-1)
		for j := 1; j <= seedsImag; j++ {
			seeds = append(seeds, complex(re, amp*float64(j)/float64(seedsImag+1)))
		}
	}
	return seeds
}
