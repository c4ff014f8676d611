package discretization

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/mathutil"
)

// Steps holds the λ-independent factors e^{τQ_n} of every sample so that a
// frequency sweep only recomputes the diagonal exponentials.
type Steps struct {
	scheme *Scheme
	h      float64
	kappa  float64
	q      []complex128

	// full[n*len(terms)+t] = e^{(h/n_t)Q_n}; half holds e^{(h/2n_t)Q_n} for
	// Strang-B terms and the modal factor for modal terms.
	full []mathutil.Mat2
	half []mathutil.Mat2
}

// Prepare precomputes the per-sample factors of the scheme for samples q on a
// grid with step h. The slice q is retained, not copied.
func (s *Scheme) Prepare(q []complex128, h, kappa float64) (*Steps, error) {
	st := &Steps{scheme: s, h: h, kappa: kappa, q: q}
	if s.exact {
		return st, nil
	}
	nt := len(s.terms)
	st.full = make([]mathutil.Mat2, len(q)*nt)
	st.half = make([]mathutil.Mat2, len(q)*nt)
	for n, qn := range q {
		for t, tm := range s.terms {
			tau := h / float64(tm.n)
			idx := n*nt + t
			switch tm.kind {
			case modalA:
				m, err := ModalFactor(qn, h, kappa)
				if err != nil {
					return nil, fmt.Errorf("sample %d: %w", n, err)
				}
				st.half[idx] = m
			case strangB:
				st.full[idx] = ExpQ(qn, tau, kappa)
				st.half[idx] = ExpQ(qn, tau/2, kappa)
			default:
				st.full[idx] = ExpQ(qn, tau, kappa)
			}
		}
	}
	return st, nil
}

// Len returns the number of steps.
func (st *Steps) Len() int { return len(st.q) }

// H returns the step size.
func (st *Steps) H() float64 { return st.h }

// Scheme returns the scheme the steps were prepared for.
func (st *Steps) Scheme() *Scheme { return st.scheme }

// Kernel evaluates steps at one spectral parameter. It caches the diagonal
// exponentials shared by all samples and is not safe for concurrent use;
// create one kernel per goroutine.
type Kernel struct {
	st   *Steps
	lam  complex128
	full []mathutil.Dual2
	half []mathutil.Dual2
}

// At returns a kernel for spectral parameter lam.
func (st *Steps) At(lam complex128) *Kernel {
	k := &Kernel{st: st, lam: lam}
	if st.scheme.exact {
		return k
	}
	nt := len(st.scheme.terms)
	k.full = make([]mathutil.Dual2, nt)
	k.half = make([]mathutil.Dual2, nt)
	for t, tm := range st.scheme.terms {
		tau := st.h / float64(tm.n)
		k.full[t] = ExpLambda(tau, lam)
		k.half[t] = ExpLambda(tau/2, lam)
	}
	return k
}

// Value returns the transfer matrix of step n.
func (k *Kernel) Value(n int) mathutil.Mat2 {
	st := k.st
	if st.scheme.exact {
		return exactValue(st.q[n], st.h, k.lam, st.kappa)
	}
	nt := len(st.scheme.terms)
	var sum mathutil.Mat2
	for t, tm := range st.scheme.terms {
		idx := n*nt + t
		var base mathutil.Mat2
		switch tm.kind {
		case lieA:
			base = k.full[t].V.Mul(st.full[idx])
		case lieB:
			base = st.full[idx].Mul(k.full[t].V)
		case strangA:
			base = k.half[t].V.Mul(st.full[idx]).Mul(k.half[t].V)
		case strangB:
			base = st.half[idx].Mul(k.full[t].V).Mul(st.half[idx])
		case modalA:
			base = k.half[t].V.Mul(st.half[idx]).Mul(k.half[t].V)
		}
		p := base
		for range tm.n - 1 {
			p = p.Mul(base)
		}
		sum = sum.Add(p.Scale(complex(tm.weight, 0)))
	}
	return sum
}

// Step returns the transfer matrix of step n together with its λ-derivative.
func (k *Kernel) Step(n int) mathutil.Dual2 {
	st := k.st
	if st.scheme.exact {
		return Exact(st.q[n], st.h, k.lam, st.kappa)
	}
	nt := len(st.scheme.terms)
	var sum mathutil.Dual2
	for t, tm := range st.scheme.terms {
		idx := n*nt + t
		full := mathutil.Dual2{V: st.full[idx]}
		half := mathutil.Dual2{V: st.half[idx]}
		var base mathutil.Dual2
		switch tm.kind {
		case lieA:
			base = k.full[t].Mul(full)
		case lieB:
			base = full.Mul(k.full[t])
		case strangA:
			base = k.half[t].Mul(full).Mul(k.half[t])
		case strangB:
			base = half.Mul(k.full[t]).Mul(half)
		case modalA:
			base = k.half[t].Mul(half).Mul(k.half[t])
		}
		p := base
		for range tm.n - 1 {
			p = p.Mul(base)
		}
		sum = sum.Add(p.Scale(complex(tm.weight, 0)))
	}
	return sum
}

// ExpLambda returns e^{τΛ} = diag(e^{-iλτ}, e^{iλτ}) and its λ-derivative.
func ExpLambda(tau float64, lam complex128) mathutil.Dual2 {
	em := cmplx.Exp(complex(0, -tau) * lam)
	ep := cmplx.Exp(complex(0, tau) * lam)
	return mathutil.Dual2{
		V: mathutil.Diag(em, ep),
		D: mathutil.Diag(complex(0, -tau)*em, complex(0, tau)*ep),
	}
}

// ExpQ returns e^{τQ} for Q = [[0, q], [-κq*, 0]]. Q² = -κ|q|²·I, so the
// exponential is cos(rτ)·I + sin(rτ)/r·Q with r² = κ|q|².
func ExpQ(q complex128, tau, kappa float64) mathutil.Mat2 {
	r2 := kappa * (real(q)*real(q) + imag(q)*imag(q))
	c, s, _ := mathutil.Trig(complex(r2, 0), tau)
	return mathutil.Mat2{c, s * q, complex(-kappa, 0) * s * cmplx.Conj(q), c}
}

// Exact returns e^{τ(Λ+Q)} for a constant sample and its λ-derivative.
// With ω² = λ² + κ|q|² the exponential is cos(ωτ)·I + sin(ωτ)/ω·(Λ+Q).
func Exact(q complex128, tau float64, lam complex128, kappa float64) mathutil.Dual2 {
	w2 := lam*lam + complex(kappa*(real(q)*real(q)+imag(q)*imag(q)), 0)
	c, s, f := mathutil.Trig(w2, tau)
	a := mathutil.Mat2{complex(0, -1) * lam, q, complex(-kappa, 0) * cmplx.Conj(q), complex(0, 1) * lam}
	v := mathutil.Identity().Scale(c).Add(a.Scale(s))
	d := mathutil.Identity().Scale(complex(-tau, 0) * lam * s).
		Add(a.Scale(lam * f)).
		Add(mathutil.Diag(complex(0, -1)*s, complex(0, 1)*s))
	return mathutil.Dual2{V: v, D: d}
}

func exactValue(q complex128, tau float64, lam complex128, kappa float64) mathutil.Mat2 {
	w2 := lam*lam + complex(kappa*(real(q)*real(q)+imag(q)*imag(q)), 0)
	c, s, _ := mathutil.Trig(w2, tau)
	return mathutil.Mat2{
		c + complex(0, -1)*lam*s,
		s * q,
		complex(-kappa, 0) * s * cmplx.Conj(q),
		c + complex(0, 1)*lam*s,
	}
}

// ModalFactor returns [[1, hq], [-κ(hq)*, 1]]/√(1+κ|hq|²), the unimodular
// first-order approximation of e^{hQ} used by the modal scheme.
func ModalFactor(q complex128, h, kappa float64) (mathutil.Mat2, error) {
	g := complex(h, 0) * q
	d := 1 + kappa*(real(g)*real(g)+imag(g)*imag(g))
	if d <= 0 {
		return mathutil.Mat2{}, ErrModalRange
	}
	n := complex(1/math.Sqrt(d), 0)
	return mathutil.Mat2{n, n * g, complex(-kappa, 0) * n * cmplx.Conj(g), n}, nil
}
