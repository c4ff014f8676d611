// Package scatter composes per-step transfer matrices into scattering data of
// the Zakharov–Shabat problem.
//
// A Propagator is immutable after construction; every method allocates its own
// kernel and may be called from many goroutines at once.
package scatter

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/mathutil"
)

// Validation errors.
var (
	ErrNoSamples    = errors.New("propagator needs at least one sample")
	ErrInvalidStep  = errors.New("step size must be positive and finite")
	ErrInvalidKappa = errors.New("kappa must be +1 or -1")
)

// Config describes a sampled potential.
type Config struct {
	// Samples are the potential values, one per step. Retained, not copied.
	Samples []complex128

	// H is the step size.
	H float64

	// TStart is the left edge of the first step.
	TStart float64

	// Kappa is +1 (focusing) or -1 (defocusing).
	Kappa float64

	// Scheme selects the per-step discretization.
	Scheme *discretization.Scheme

	// Normalize rescales running products by powers of two to keep them in
	// floating-point range.
	Normalize bool
}

// Propagator evaluates transfer matrices of one sampled potential.
type Propagator struct {
	steps     *discretization.Steps
	q         []complex128
	h         float64
	tStart    float64
	tEnd      float64
	kappa     float64
	normalize bool
	split     int
}

// New validates cfg and prepares the per-step factors.
func New(cfg Config) (*Propagator, error) {
	if len(cfg.Samples) == 0 {
		return nil, ErrNoSamples
	}
	if !(cfg.H > 0) || math.IsInf(cfg.H, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStep, cfg.H)
	}
	if cfg.Kappa != 1 && cfg.Kappa != -1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidKappa, cfg.Kappa)
	}
	steps, err := cfg.Scheme.Prepare(cfg.Samples, cfg.H, cfg.Kappa)
	if err != nil {
		return nil, err
	}
	d := len(cfg.Samples)
	return &Propagator{
		steps:     steps,
		q:         cfg.Samples,
		h:         cfg.H,
		tStart:    cfg.TStart,
		tEnd:      cfg.TStart + float64(d)*cfg.H,
		kappa:     cfg.Kappa,
		normalize: cfg.Normalize,
		split:     massCentre(cfg.Samples),
	}, nil
}

// NewVanishing builds a propagator for samples at t_n = t1 + n·h,
// h = (t2-t1)/(D-1), each sample owning the cell [t_n - h/2, t_n + h/2].
func NewVanishing(q []complex128, t1, t2, kappa float64, scheme *discretization.Scheme, normalize bool) (*Propagator, error) {
	if len(q) < 2 {
		return nil, fmt.Errorf("%w: vanishing boundaries need D >= 2", ErrNoSamples)
	}
	h := (t2 - t1) / float64(len(q)-1)
	return New(Config{Samples: q, H: h, TStart: t1 - h/2, Kappa: kappa, Scheme: scheme, Normalize: normalize})
}

// NewPeriodic builds a propagator for one period [t1, t2) sampled at
// t_n = t1 + n·h, h = (t2-t1)/D.
func NewPeriodic(q []complex128, t1, t2, kappa float64, scheme *discretization.Scheme, normalize bool) (*Propagator, error) {
	if len(q) == 0 {
		return nil, ErrNoSamples
	}
	h := (t2 - t1) / float64(len(q))
	return New(Config{Samples: q, H: h, TStart: t1, Kappa: kappa, Scheme: scheme, Normalize: normalize})
}

// Len returns the number of steps.
func (p *Propagator) Len() int { return len(p.q) }

// H returns the step size.
func (p *Propagator) H() float64 { return p.h }

// Kappa returns the nonlinearity sign.
func (p *Propagator) Kappa() float64 { return p.kappa }

// Samples returns the potential the propagator was built from.
func (p *Propagator) Samples() []complex128 { return p.q }

// Transfer returns M = U_{D-1}···U_0 at λ as a matrix times e^{logScale}.
func (p *Propagator) Transfer(lam complex128) (m mathutil.Mat2, logScale float64) {
	k := p.steps.At(lam)
	m = mathutil.Identity()
	for n := range p.q {
		m = k.Value(n).Mul(m)
		if p.normalize {
			var e int
			m, e = rescale(m)
			logScale += float64(e) * math.Ln2
		}
	}
	return m, logScale
}

// TransferDual returns M and dM/dλ sharing one scale factor e^{logScale}.
func (p *Propagator) TransferDual(lam complex128) (d mathutil.Dual2, logScale float64) {
	k := p.steps.At(lam)
	d = mathutil.DualIdentity()
	for n := range p.q {
		d = k.Step(n).Mul(d)
		if p.normalize {
			var e int
			d, e = rescaleDual(d)
			logScale += float64(e) * math.Ln2
		}
	}
	return d, logScale
}

// Coefficients returns the scattering coefficients a(λ) and b(λ) for
// vanishing boundaries: a = M11·e^{iλ(Tend-Tstart)}, b = M21·e^{-iλ(Tend+Tstart)}.
func (p *Propagator) Coefficients(lam complex128) (a, b complex128) {
	m, ls := p.Transfer(lam)
	a = m[0] * cmplx.Exp(complex(0, p.tEnd-p.tStart)*lam+complex(ls, 0))
	b = m[2] * cmplx.Exp(complex(0, -(p.tEnd+p.tStart))*lam+complex(ls, 0))
	return a, b
}

// ADerivative returns a(λ) and a'(λ), both divided by the common factor
// e^{logScale}. The Newton step a/a' is independent of the scale.
func (p *Propagator) ADerivative(lam complex128) (a, da complex128, logScale float64) {
	d, ls := p.TransferDual(lam)
	width := p.tEnd - p.tStart
	phase := cmplx.Exp(complex(0, width) * lam)
	a = d.V[0] * phase
	da = (d.D[0] + complex(0, width)*d.V[0]) * phase
	return a, da, ls
}

// Monodromy returns the transfer matrix over one period and its λ-derivative,
// both multiplied by e^{logScale}. For a periodic propagator this is M(λ).
func (p *Propagator) Monodromy(lam complex128) (d mathutil.Dual2, logScale float64) {
	return p.TransferDual(lam)
}

// Discriminant returns Δ(λ) = tr M(λ)/2 and Δ'(λ) without scaling.
func (p *Propagator) Discriminant(lam complex128) (delta, dDelta complex128) {
	d, ls := p.TransferDual(lam)
	scale := complex(math.Exp(ls)/2, 0)
	return d.V.Trace() * scale, d.D.Trace() * scale
}

// NormingConstant returns b(λ) at a bound state λ, where φ(t,λ) = b·ψ(t,λ).
// φ is propagated from the left edge and ψ from the right edge to a common
// split point, which keeps both solutions in their decaying regime.
func (p *Propagator) NormingConstant(lam complex128) complex128 {
	k := p.steps.At(lam)

	phi := mathutil.Vec2{1, 0}
	logPhi := complex(0, -1) * lam * complex(p.tStart, 0)
	for n := 0; n < p.split; n++ {
		phi = k.Value(n).Apply(phi)
		nrm := phi.Norm()
		if nrm == 0 || math.IsInf(nrm, 0) || math.IsNaN(nrm) {
			return cmplx.NaN()
		}
		phi = phi.Scale(complex(1/nrm, 0))
		logPhi += complex(math.Log(nrm), 0)
	}

	psi := mathutil.Vec2{0, 1}
	logPsi := complex(0, 1) * lam * complex(p.tEnd, 0)
	for n := len(p.q) - 1; n >= p.split; n-- {
		psi = k.Value(n).Inv().Apply(psi)
		nrm := psi.Norm()
		if nrm == 0 || math.IsInf(nrm, 0) || math.IsNaN(nrm) {
			return cmplx.NaN()
		}
		psi = psi.Scale(complex(1/nrm, 0))
		logPsi += complex(math.Log(nrm), 0)
	}

	i := 0
	if cmplx.Abs(psi[1]) > cmplx.Abs(psi[0]) {
		i = 1
	}
	return phi[i] / psi[i] * cmplx.Exp(logPhi-logPsi)
}

// Jost holds the left (φ) and right (ψ) Jost solutions at the sample centres
// t_n = Tstart + (n+½)h as unit vectors times e^{Log}.
type Jost struct {
	Phi    []mathutil.Vec2
	LogPhi []complex128
	Psi    []mathutil.Vec2
	LogPsi []complex128
}

// JostAtSamples integrates the Jost solutions at λ with exact half steps over
// each cell, independent of the propagator's scheme.
func (p *Propagator) JostAtSamples(lam complex128) Jost {
	d := len(p.q)
	j := Jost{
		Phi:    make([]mathutil.Vec2, d),
		LogPhi: make([]complex128, d),
		Psi:    make([]mathutil.Vec2, d),
		LogPsi: make([]complex128, d),
	}
	half := p.h / 2

	phi := mathutil.Vec2{1, 0}
	logPhi := complex(0, -1) * lam * complex(p.tStart, 0)
	for n := range d {
		e := discretization.Exact(p.q[n], half, lam, p.kappa).V
		phi, logPhi = advance(e, phi, logPhi)
		j.Phi[n], j.LogPhi[n] = phi, logPhi
		phi, logPhi = advance(e, phi, logPhi)
	}

	psi := mathutil.Vec2{0, 1}
	logPsi := complex(0, 1) * lam * complex(p.tEnd, 0)
	for n := d - 1; n >= 0; n-- {
		e := discretization.Exact(p.q[n], -half, lam, p.kappa).V
		psi, logPsi = advance(e, psi, logPsi)
		j.Psi[n], j.LogPsi[n] = psi, logPsi
		psi, logPsi = advance(e, psi, logPsi)
	}
	return j
}

func advance(m mathutil.Mat2, v mathutil.Vec2, logv complex128) (mathutil.Vec2, complex128) {
	v = m.Apply(v)
	nrm := v.Norm()
	if nrm == 0 {
		return v, logv
	}
	return v.Scale(complex(1/nrm, 0)), logv + complex(math.Log(nrm), 0)
}

// massCentre returns the index where the running sum of |q| first reaches half
// of the total, or D/2 for a zero potential.
func massCentre(q []complex128) int {
	total := 0.0
	for _, v := range q {
		total += cmplx.Abs(v)
	}
	if total == 0 {
		return len(q) / 2
	}
	run := 0.0
	for n, v := range q {
		run += cmplx.Abs(v)
		if run >= total/2 {
			return n
		}
	}
	return len(q) - 1
}
