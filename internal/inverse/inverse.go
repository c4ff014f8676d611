package inverse

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/scatter"
	"gonum.org/v1/gonum/cmplxs"
)

// Input selects what the continuous spectrum holds.
type Input int

const (
	// Reflection holds b(ξ)/a(ξ).
	Reflection Input = iota
	// BOfXi holds b(ξ).
	BOfXi
)

// Method selects how the continuous part is inverted.
type Method int

const (
	// Cepstrum peels the transfer matrix built from a minimum-phase a once.
	Cepstrum Method = iota
	// DefectCorrection repeats Cepstrum on a corrected reflection
	// coefficient until the forward transform of the result matches.
	DefectCorrection
)

// Request describes one inversion. Windows are validated by the caller.
type Request struct {
	// Spectrum holds the continuous spectrum at the M nodes of [Xi1, Xi2];
	// nil means zero.
	Spectrum []complex128
	Xi1, Xi2 float64
	M        int
	Input    Input
	Method   Method

	// BoundStates and Coefficients describe the discrete spectrum; the
	// coefficients are residues when Residues is set.
	BoundStates  []complex128
	Coefficients []complex128
	Residues     bool

	D      int
	T1, T2 float64
	Kappa  float64
	Scheme discretization.ID

	MaxIter      int
	Tolerance    float64
	Oversampling int
	Workers      int
}

// Result is the reconstructed potential.
type Result struct {
	Q []complex128

	// Iterations, Residual and Converged describe defect correction:
	// Residual is max|R - R[q]| of the returned iterate.
	Iterations int
	Residual   float64
	Converged  bool
}

// Run inverts req.
func Run(req *Request) (*Result, error) {
	scheme, err := discretization.Lookup(req.Scheme)
	if err != nil {
		return nil, err
	}
	h := (req.T2 - req.T1) / float64(req.D-1)
	xi := engine.Nodes(req.Xi1, req.Xi2, req.M)

	spec := req.Spectrum
	if spec == nil {
		spec = make([]complex128, req.M)
	}
	target, err := continuousReflection(spec, xi, req)
	if err != nil {
		return nil, err
	}

	res := &Result{Converged: true}
	res.Q, err = fromReflection(target, xi, h, req)
	if err != nil {
		return nil, err
	}
	if req.Method == DefectCorrection {
		if err := correct(res, target, xi, h, req); err != nil {
			return nil, err
		}
	}

	if len(req.BoundStates) == 0 {
		return res, nil
	}
	norming := req.Coefficients
	if req.Residues {
		norming, err = residuesToNorming(res.Q, req)
		if err != nil {
			return nil, err
		}
	}
	for k, lam := range req.BoundStates {
		res.Q, err = addBoundState(res.Q, req.T1, req.T2, scheme, lam, norming[k])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// continuousReflection returns the reflection coefficient of the
// soliton-free part: R·Π(ξ-λ_k)/(ξ-λ_k*) for reflection input, b/a_c for
// b(ξ) input (b is unchanged by adding bound states).
func continuousReflection(spec []complex128, xi []float64, req *Request) ([]complex128, error) {
	out := make([]complex128, len(spec))
	if req.Input == BOfXi {
		mag2 := make([]float64, len(spec))
		for j, b := range spec {
			mag := 1 - req.Kappa*real(b*cmplx.Conj(b))
			if !(mag > 0) {
				return nil, fmt.Errorf("%w: |a(ξ)|² = %g at node %d", ErrNotPeelable, mag, j)
			}
			mag2[j] = mag
		}
		_, a := minimumPhase(mag2, 1, req.Oversampling)
		for j, b := range spec {
			out[j] = b / a[j]
		}
		return out, nil
	}
	for j, r := range spec {
		x := complex(xi[j], 0)
		for _, lam := range req.BoundStates {
			r *= (x - lam) / (x - cmplx.Conj(lam))
		}
		out[j] = r
	}
	return out, nil
}

// fromReflection builds [A; B] from the reflection coefficient at the nodes
// and peels it.
func fromReflection(r []complex128, xi []float64, h float64, req *Request) ([]complex128, error) {
	mag2 := make([]float64, len(r))
	for j, v := range r {
		mag := 1 + req.Kappa*real(v*cmplx.Conj(v))
		if !(mag > 0) || math.IsInf(mag, 0) {
			return nil, fmt.Errorf("%w: 1+κ|R|² = %g at node %d", ErrNotPeelable, mag, j)
		}
		mag2[j] = 1 / mag
	}
	a, aNodes := minimumPhase(mag2, req.D, req.Oversampling)

	bNodes := make([]complex128, len(r))
	for j, v := range r {
		bNodes[j] = v * aNodes[j] * cmplx.Exp(complex(0, 2*xi[j]*req.T2))
	}
	b := nodeCoefficients(bNodes, req.D)
	return peel(a, b, req.D, req.Scheme, h, req.Kappa)
}

// correct runs defect correction R̂ ← R̂ + (R - R[q]) starting from res.Q and
// keeps the iterate with the smallest residual.
func correct(res *Result, target []complex128, xi []float64, h float64, req *Request) error {
	rhat := append([]complex128(nil), target...)
	defect := make([]complex128, len(target))
	best := math.Inf(1)
	bestQ := res.Q
	q := res.Q
	res.Converged = false

	for it := 1; it <= req.MaxIter; it++ {
		rq, err := forwardReflection(q, xi, req)
		if err != nil {
			return err
		}
		cmplxs.SubTo(defect, target, rq)
		resid := cmplxs.Norm(defect, math.Inf(1))
		res.Iterations = it
		if resid < best {
			best, bestQ = resid, q
		}
		if resid <= req.Tolerance {
			res.Converged = true
			break
		}
		cmplxs.Add(rhat, defect)
		if q, err = fromReflection(rhat, xi, h, req); err != nil {
			return err
		}
	}
	res.Q, res.Residual = bestQ, best
	return nil
}

func forwardReflection(q []complex128, xi []float64, req *Request) ([]complex128, error) {
	scheme, err := discretization.Lookup(req.Scheme)
	if err != nil {
		return nil, err
	}
	p, err := newPropagator(q, req, scheme)
	if err != nil {
		return nil, err
	}
	c, err := engine.ContinuousSpectrum(p, engine.ContinuousRequest{Xi: xi, Reflection: true, Workers: req.Workers})
	if err != nil {
		return nil, err
	}
	return c.Reflection, nil
}

// residuesToNorming converts residues r_k = b_k/a'(λ_k) using
// a(λ) = a_c(λ)·Π_j (λ-λ_j)/(λ-λ_j*), where a_c belongs to the continuous
// part qc.
func residuesToNorming(qc []complex128, req *Request) ([]complex128, error) {
	scheme, err := discretization.Lookup(req.Scheme)
	if err != nil {
		return nil, err
	}
	p, err := newPropagator(qc, req, scheme)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(req.BoundStates))
	for k, lk := range req.BoundStates {
		ac, _ := p.Coefficients(lk)
		da := ac / (lk - cmplx.Conj(lk))
		for j, lj := range req.BoundStates {
			if j != k {
				da *= (lk - lj) / (lk - cmplx.Conj(lj))
			}
		}
		out[k] = req.Coefficients[k] * da
	}
	return out, nil
}

func newPropagator(q []complex128, req *Request, scheme *discretization.Scheme) (*scatter.Propagator, error) {
	return scatter.NewVanishing(q, req.T1, req.T2, req.Kappa, scheme, true)
}
