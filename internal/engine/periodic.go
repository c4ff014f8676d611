package engine

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/poly"
	"github.com/tphakala/go-nft/internal/scatter"
	"gonum.org/v1/gonum/cmplxs"
)

// PeriodicLocalization selects how main and auxiliary spectrum candidates are
// found.
type PeriodicLocalization int

const (
	// PeriodicSubsample roots the polynomial forms of a decimated period.
	PeriodicSubsample PeriodicLocalization = iota

	// GridSearch scans the real axis.
	GridSearch

	// Mixed merges both.
	Mixed
)

// PeriodicFiltering selects which periodic spectrum points survive.
type PeriodicFiltering int

const (
	PeriodicFilterNone PeriodicFiltering = iota
	PeriodicFilterManual
	PeriodicFilterAuto
)

// PeriodicRequest configures a periodic spectrum computation.
type PeriodicRequest struct {
	Localization PeriodicLocalization
	Filtering    PeriodicFiltering

	// BoundingBox is [Re min, Re max, Im min, Im max] for manual filtering.
	BoundingBox [4]float64

	// MaxEvaluations caps the Newton steps per candidate.
	MaxEvaluations int

	Scheme  discretization.ID
	Workers int
}

// Periodic holds the main and auxiliary spectra in canonical order.
type Periodic struct {
	Main []complex128
	Aux  []complex128

	// Found counts survivors before truncation to capacity.
	MainFound int
	AuxFound  int
	Truncated bool
}

type spectrumKind int

const (
	mainSpectrum spectrumKind = iota
	auxSpectrum
)

// PeriodicSpectrum computes the main spectrum Δ(λ)² = 1 and the auxiliary
// spectrum M12(λ) = 0 of a periodic propagator.
func PeriodicSpectrum(p *scatter.Propagator, req PeriodicRequest) (*Periodic, error) {
	var mainSeeds, auxSeeds []complex128
	if req.Localization == PeriodicSubsample || req.Localization == Mixed {
		m, a, err := polynomialCandidates(p, req)
		if err != nil {
			return nil, err
		}
		mainSeeds, auxSeeds = append(mainSeeds, m...), append(auxSeeds, a...)
	}
	if req.Localization == GridSearch || req.Localization == Mixed {
		m, a, err := gridCandidates(p, req.Workers)
		if err != nil {
			return nil, err
		}
		mainSeeds, auxSeeds = append(mainSeeds, m...), append(auxSeeds, a...)
	}

	mainRoots := refinePeriodic(p, mainSpectrum, mainSeeds, req.MaxEvaluations, req.Workers)
	auxRoots := refinePeriodic(p, auxSpectrum, auxSeeds, req.MaxEvaluations, req.Workers)

	amp := cmplx.Abs(cmplxs.MaxAbs(p.Samples()))
	out := &Periodic{
		Main: screenPeriodic(mainRoots, req, p.H(), amp),
		Aux:  screenPeriodic(auxRoots, req, p.H(), amp),
	}
	out.MainFound, out.AuxFound = len(out.Main), len(out.Aux)
	if c := mainCapacityPerSample * p.Len(); len(out.Main) > c {
		out.Main, out.Truncated = out.Main[:c], true
	}
	if c := auxCapacityPerSample * p.Len(); len(out.Aux) > c {
		out.Aux, out.Truncated = out.Aux[:c], true
	}
	return out, nil
}

// polynomialCandidates roots (P11 + z·P22)² - 4z^D and P12 of a decimated
// period. An identically vanishing P12 yields no auxiliary candidates.
func polynomialCandidates(p *scatter.Propagator, req PeriodicRequest) (mainC, auxC []complex128, err error) {
	sub, hSub, err := subsample(p.Samples(), p.H(), true, subsampleSize(len(p.Samples())))
	if err != nil {
		return nil, nil, err
	}
	pm, err := transferPoly(sub, hSub, p.Kappa(), req.Scheme)
	if err != nil {
		return nil, nil, err
	}

	tr := poly.Add(pm[0], poly.Shift(pm[3]))
	zd := make(poly.Poly, len(sub)+1)
	zd[len(sub)] = -4
	roots, err := poly.Roots(poly.Add(poly.Mul(tr, tr), zd))
	if err != nil && !errors.Is(err, poly.ErrDegeneratePolynomial) {
		return nil, nil, err
	}
	mainC = rootsToLambda(roots, hSub)

	roots, err = poly.Roots(pm[1])
	if err != nil && !errors.Is(err, poly.ErrDegeneratePolynomial) {
		return nil, nil, err
	}
	auxC = rootsToLambda(roots, hSub)

	if req.Filtering != PeriodicFilterNone {
		amp := cmplx.Abs(cmplxs.MaxAbs(p.Samples()))
		mainC = plausible(mainC, hSub, amp)
		auxC = plausible(auxC, hSub, amp)
	}
	return mainC, auxC, nil
}

// gridCandidates scans the real axis inside the Nyquist band: crossings of
// Re Δ through ±1 and small local minima of |Δ²-1| seed the main spectrum,
// small strict local minima of |M12| seed the auxiliary spectrum.
func gridCandidates(p *scatter.Propagator, workers int) (mainC, auxC []complex128, err error) {
	n := min(maxGridPoints, gridPointsPerSample*p.Len())
	nyq := math.Pi / (2 * p.H())
	xi := make([]float64, n)
	for i := range xi {
		xi[i] = -nyq + (float64(i)+0.5)*2*nyq/float64(n)
	}
	delta := make([]float64, n)
	gap := make([]float64, n)
	m12 := make([]float64, n)
	err = parallelFor(workers, n, func(i int) error {
		m, ls := p.Transfer(complex(xi[i], 0))
		scale := complex(math.Exp(ls), 0)
		d := m.Trace() * scale / 2
		delta[i] = real(d)
		gap[i] = cmplx.Abs(d*d - 1)
		m12[i] = cmplx.Abs(m[1] * scale)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i+1 < n; i++ {
		for _, s := range [2]float64{1, -1} {
			f0, f1 := delta[i]-s, delta[i+1]-s
			if f0 == 0 || f0*f1 < 0 {
				t := f0 / (f0 - f1)
				mainC = append(mainC, complex(xi[i]+t*(xi[i+1]-xi[i]), 0))
			}
		}
	}
	for i := 1; i+1 < n; i++ {
		if gap[i] < gridMinimumThreshold && gap[i] <= gap[i-1] && gap[i] <= gap[i+1] {
			mainC = append(mainC, complex(xi[i], 0))
		}
		if m12[i] < gridMinimumThreshold && m12[i] < m12[i-1] && m12[i] <= m12[i+1] {
			auxC = append(auxC, complex(xi[i], 0))
		}
	}
	return mainC, auxC, nil
}

// plausible keeps finite candidates inside the band a grid with step h
// resolves whose imaginary part does not exceed the potential's peak.
func plausible(c []complex128, h, amp float64) []complex128 {
	nyq := math.Pi / (2 * h)
	out := c[:0]
	for _, lam := range c {
		if mathutil.IsFiniteComplex(lam) && math.Abs(real(lam)) < nyq && math.Abs(imag(lam)) <= amp*imagBoundSlack+periodicImagSlack {
			out = append(out, lam)
		}
	}
	return out
}

// refinePeriodic runs Newton's method on Δ(λ) ∓ 1 or on M12(λ) from every
// seed and keeps the converged roots in seed order.
func refinePeriodic(p *scatter.Propagator, kind spectrumKind, seeds []complex128, maxEval, workers int) []complex128 {
	res := make([]complex128, len(seeds))
	ok := make([]bool, len(seeds))
	_ = parallelFor(workers, len(seeds), func(i int) error {
		res[i], ok[i] = newtonPeriodic(p, kind, seeds[i], maxEval)
		return nil
	})
	roots := make([]complex128, 0, len(seeds))
	for i, r := range res {
		if ok[i] {
			roots = append(roots, r)
		}
	}
	return roots
}

func newtonPeriodic(p *scatter.Propagator, kind spectrumKind, seed complex128, maxEval int) (complex128, bool) {
	if !mathutil.IsFiniteComplex(seed) {
		return seed, false
	}
	lam := seed
	for range maxEval {
		var g, dg complex128
		switch kind {
		case mainSpectrum:
			delta, dDelta := p.Discriminant(lam)
			s := complex(1, 0)
			if real(delta) < 0 {
				s = -1
			}
			g, dg = delta-s, dDelta
		default:
			d, ls := p.Monodromy(lam)
			scale := complex(math.Exp(ls), 0)
			g, dg = d.V[1]*scale, d.D[1]*scale
		}
		if !mathutil.IsFiniteComplex(g) || !mathutil.IsFiniteComplex(dg) {
			return lam, false
		}
		if cmplx.Abs(g) <= periodicResidual {
			return lam, true
		}
		if dg == 0 {
			return lam, false
		}
		step := g / dg
		lam -= step
		if !mathutil.IsFiniteComplex(lam) {
			return lam, false
		}
		if cmplx.Abs(step) <= newtonTolerance*(1+cmplx.Abs(lam)) {
			return lam, true
		}
	}
	return lam, false
}

func screenPeriodic(c []complex128, req PeriodicRequest, h, amp float64) []complex128 {
	var out []complex128
	switch req.Filtering {
	case PeriodicFilterNone:
		return screen(c, FilterNone, h, amp)
	case PeriodicFilterManual:
		out = make([]complex128, 0, len(c))
		for _, lam := range c {
			if mathutil.IsFiniteComplex(lam) && inBox(lam, req.BoundingBox) {
				out = append(out, lam)
			}
		}
	default:
		out = plausible(append([]complex128(nil), c...), h, amp)
	}
	sortSpectrum(out)
	return dedup(out, mergeTolerance)
}
