package inverse

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/poly"
	"github.com/tphakala/go-nft/internal/scatter"
	"github.com/tphakala/go-nft/internal/testutil"
)

func TestXi(t *testing.T) {
	xi1, xi2, err := Xi(5, 0, 4, 8)
	require.NoError(t, err)
	assert.InDelta(t, -math.Pi/2, xi1, 1e-15)
	assert.InDelta(t, -math.Pi/2+7*math.Pi/8, xi2, 1e-15)
	require.NoError(t, CheckWindow(5, 0, 4, 8, xi1, xi2))
	require.ErrorIs(t, CheckWindow(5, 0, 4, 8, xi1, xi2+1e-3), ErrWindow)

	tests := []struct {
		name   string
		d, m   int
		t1, t2 float64
	}{
		{"one sample", 1, 4, 0, 1},
		{"reversed window", 4, 4, 1, 0},
		{"too few nodes", 8, 4, 0, 1},
		{"infinite window", 4, 4, math.Inf(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Xi(tt.d, tt.t1, tt.t2, tt.m)
			require.ErrorIs(t, err, ErrWindow)
		})
	}
}

// The window nodes map onto z_j = -w^j.
func TestXiNodes(t *testing.T) {
	const d, m = 6, 16
	xi1, xi2, err := Xi(d, -1, 1, m)
	require.NoError(t, err)
	h := 2.0 / (d - 1)
	w := cmplx.Exp(complex(0, 2*math.Pi/m))
	zj := complex(-1, 0)
	for _, x := range engine.Nodes(xi1, xi2, m) {
		testutil.AssertComplexInDelta(t, zj, cmplx.Exp(complex(0, 2*h*x)), 1e-12)
		zj *= w
	}
}

func TestNodeCoefficients(t *testing.T) {
	const m = 16
	want := poly.Poly{1, -0.5i, 0.25, 0, 0.1}
	f := make([]complex128, m)
	z := complex(-1, 0)
	w := cmplx.Exp(complex(0, 2*math.Pi/m))
	for j := range f {
		f[j] = want.Eval(z)
		z *= w
	}
	got := nodeCoefficients(f, 6)
	require.Len(t, got, 6)
	for k := range got {
		var wk complex128
		if k < len(want) {
			wk = want[k]
		}
		testutil.AssertComplexInDelta(t, wk, got[k], 1e-13)
	}
}

func TestMinimumPhase(t *testing.T) {
	const m = 64
	tests := []struct {
		name   string
		target poly.Poly
	}{
		{"far zero", poly.Poly{1, -0.5}},
		// A node cepstrum would alias at 0.9^64 ≈ 1e-3.
		{"near zero", poly.Poly{1, -0.9}},
		{"two zeros", poly.Poly{1, -0.6i, -0.25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mag2, zs := nodeSamples(tt.target, m)
			coeffs, atNodes := minimumPhase(mag2, 4, 8)
			require.Len(t, coeffs, 4)
			for k := range coeffs {
				var want complex128
				if k < len(tt.target) {
					want = tt.target[k]
				}
				testutil.AssertComplexInDelta(t, want, coeffs[k], 1e-10)
			}
			for j := range atNodes {
				testutil.AssertComplexInDelta(t, tt.target.Eval(zs[j]), atNodes[j], 1e-10)
			}
		})
	}

	t.Run("flat", func(t *testing.T) {
		ones := make([]float64, m)
		for j := range ones {
			ones[j] = 1
		}
		flat, _ := minimumPhase(ones, 3, 2)
		testutil.AssertComplexSliceInDelta(t, []complex128{1, 0, 0}, flat, 1e-14)
	})
}

// A step in |A|² rings below zero between the nodes, which selects the node
// cepstrum. |A| must still match at the nodes.
func TestMinimumPhase_NodeFallback(t *testing.T) {
	const m = 32
	mag2 := make([]float64, m)
	for j := range mag2 {
		mag2[j] = 1
		if j >= m/2 {
			mag2[j] = 1e-6
		}
	}
	_, atNodes := minimumPhase(mag2, 2, 4)
	for j, a := range atNodes {
		assert.InDelta(t, math.Sqrt(mag2[j]), cmplx.Abs(a), 1e-9, "node %d", j)
	}
}

// nodeSamples returns |p(z_j)|² at the m frequency nodes z_j = -w^j.
func nodeSamples(p poly.Poly, m int) (mag2 []float64, zs []complex128) {
	mag2 = make([]float64, m)
	zs = make([]complex128, m)
	z := complex(-1, 0)
	w := cmplx.Exp(complex(0, 2*math.Pi/float64(m)))
	for j := range mag2 {
		zs[j] = z
		v := p.Eval(z)
		mag2[j] = real(v * cmplx.Conj(v))
		z *= w
	}
	return mag2, zs
}

func TestPeel_RoundTrip(t *testing.T) {
	const d, h = 32, 0.1
	for _, id := range []discretization.ID{discretization.Split2A, discretization.Split2Modal} {
		for _, kappa := range []float64{1, -1} {
			q := make([]complex128, d)
			for n := range q {
				x := float64(n-d/2) * h
				q[n] = complex(1.2*math.Exp(-x*x), 0.4*x*math.Exp(-x*x))
			}
			factors := make([]mathutil.Mat2, d)
			for n, qn := range q {
				c, err := discretization.PolyFactor(id, qn, h, kappa)
				require.NoError(t, err)
				factors[n] = c
			}
			p := poly.ChainProduct(factors)

			got, err := peel(p[0], p[2], d, id, h, kappa)
			require.NoError(t, err)
			testutil.AssertComplexSliceInDelta(t, q, got, 1e-10)
		}
	}
}

func TestPeel_NotPeelable(t *testing.T) {
	_, err := peel(poly.Poly{0, 1}, poly.Poly{1, 0}, 2, discretization.Split2A, 0.1, 1)
	require.ErrorIs(t, err, ErrNotPeelable)

	// |Γ| ≥ 1 has no defocusing sample.
	_, err = peel(poly.Poly{1, 0}, poly.Poly{2, 0}, 2, discretization.Split2A, 0.1, -1)
	require.ErrorIs(t, err, ErrNotPeelable)
}

// Adding λ = i/2 with b = -1 to the zero potential yields sech(t).
func TestAddBoundState(t *testing.T) {
	const d = 512
	s, err := discretization.Lookup(discretization.Split2A)
	require.NoError(t, err)
	got, err := addBoundState(make([]complex128, d), -16, 16, s, 0.5i, -1)
	require.NoError(t, err)
	want := testutil.Sech(d, -16, 16, 1)
	assert.Less(t, testutil.MaxAbsDiff(want, got), 1e-10)

	// A second transform adds a second eigenvalue.
	two, err := addBoundState(got, -16, 16, s, 1.5i, 1)
	require.NoError(t, err)
	bo, err := discretization.Lookup(discretization.BO)
	require.NoError(t, err)
	bs, err := scatter.NewVanishing(two, -16, 16, 1, bo, true)
	require.NoError(t, err)
	for _, lam := range []complex128{0.5i, 1.5i} {
		a, _ := bs.Coefficients(lam)
		assert.Less(t, cmplx.Abs(a), 1e-2, "λ=%v", lam)
	}
}

func gaussian(d int, t1, t2, amp float64) []complex128 {
	q := make([]complex128, d)
	h := (t2 - t1) / float64(d-1)
	for n := range q {
		x := t1 + float64(n)*h
		q[n] = complex(amp*math.Exp(-x*x), 0.3*amp*x*math.Exp(-x*x))
	}
	return q
}

func request(d, m int, t1, t2 float64) *Request {
	xi1, xi2, _ := Xi(d, t1, t2, m)
	return &Request{
		Xi1: xi1, Xi2: xi2, M: m,
		D: d, T1: t1, T2: t2,
		Kappa:        1,
		Scheme:       discretization.Split2A,
		MaxIter:      20,
		Tolerance:    1e-12,
		Oversampling: 8,
	}
}

func forwardR(t *testing.T, q []complex128, req *Request) []complex128 {
	t.Helper()
	r, err := forwardReflection(q, engine.Nodes(req.Xi1, req.Xi2, req.M), req)
	require.NoError(t, err)
	return r
}

func TestRun_ContinuousRoundTrip(t *testing.T) {
	const d, m = 64, 256
	for _, kappa := range []float64{1, -1} {
		for _, method := range []Method{Cepstrum, DefectCorrection} {
			req := request(d, m, -4, 4)
			req.Kappa = kappa
			req.Method = method
			q := gaussian(d, -4, 4, 0.8)
			req.Spectrum = forwardR(t, q, req)

			res, err := Run(req)
			require.NoError(t, err)
			require.Len(t, res.Q, d)
			assert.Less(t, testutil.MaxAbsDiff(q, res.Q), 1e-6, "kappa=%v method=%d", kappa, method)
			if method == DefectCorrection {
				assert.Positive(t, res.Iterations)
				assert.Less(t, res.Residual, 1e-6)
			}
		}
	}
}

func TestRun_BOfXi(t *testing.T) {
	const d, m = 64, 256
	req := request(d, m, -4, 4)
	q := gaussian(d, -4, 4, 0.6)
	s, err := discretization.Lookup(discretization.Split2A)
	require.NoError(t, err)
	p, err := scatter.NewVanishing(q, req.T1, req.T2, 1, s, true)
	require.NoError(t, err)
	c, err := engine.ContinuousSpectrum(p, engine.ContinuousRequest{Xi: engine.Nodes(req.Xi1, req.Xi2, m), AB: true})
	require.NoError(t, err)

	req.Spectrum = c.B
	req.Input = BOfXi
	res, err := Run(req)
	require.NoError(t, err)
	assert.Less(t, testutil.MaxAbsDiff(q, res.Q), 1e-6)
}

func TestRun_Reflectionless(t *testing.T) {
	const d, m = 256, 512
	want := testutil.Sech(d, -12, 12, 1)

	t.Run("norming constants", func(t *testing.T) {
		req := request(d, m, -12, 12)
		req.BoundStates = []complex128{0.5i}
		req.Coefficients = []complex128{-1}
		res, err := Run(req)
		require.NoError(t, err)
		assert.Less(t, testutil.MaxAbsDiff(want, res.Q), 1e-8)
	})

	t.Run("residues", func(t *testing.T) {
		req := request(d, m, -12, 12)
		req.BoundStates = []complex128{0.5i}
		req.Coefficients = []complex128{-1i}
		req.Residues = true
		res, err := Run(req)
		require.NoError(t, err)
		assert.Less(t, testutil.MaxAbsDiff(want, res.Q), 1e-8)
	})
}

func TestRun_NotPeelable(t *testing.T) {
	// Focusing b(ξ) must satisfy |b| < 1.
	req := request(8, 8, 0, 1)
	req.Spectrum = make([]complex128, 8)
	req.Spectrum[3] = 1
	req.Input = BOfXi
	_, err := Run(req)
	require.ErrorIs(t, err, ErrNotPeelable)
}

func BenchmarkRun(b *testing.B) {
	req := request(256, 1024, -8, 8)
	req.BoundStates = []complex128{0.5i, 1i}
	req.Coefficients = []complex128{-1, 1}
	for b.Loop() {
		_, _ = Run(req)
	}
}
