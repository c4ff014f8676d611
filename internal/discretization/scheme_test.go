package discretization

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSample = complex(0.8, 0.3)
	testLambda = complex(0.7, 0.1)
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    ID
		wantErr bool
	}{
		{"2SPLIT4B", Split4B, false},
		{"2split2_modal", Split2Modal, false},
		{" bo ", BO, false},
		{"2SPLIT9A", Default, true},
		{"", Default, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownScheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	ids := All()
	require.Len(t, ids, 20)
	for _, id := range ids {
		s, err := Lookup(id)
		require.NoError(t, err)
		back, err := Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, back)
		assert.Equal(t, id, s.ID)
		assert.LessOrEqual(t, s.Order, s.SplitOrder)
	}

	_, err := Lookup(Default)
	require.ErrorIs(t, err, ErrUnknownScheme)
	assert.Equal(t, "default", Default.String())

	assert.True(t, Split2A.SupportsInverse())
	assert.True(t, Split2Modal.SupportsInverse())
	assert.False(t, Split4B.SupportsInverse())
}

func oneStepError(t *testing.T, s *Scheme, h float64) float64 {
	t.Helper()
	st, err := s.Prepare([]complex128{testSample}, h, 1)
	require.NoError(t, err)
	got := st.At(testLambda).Value(0)
	want := exactValue(testSample, h, testLambda, 1)
	return got.Add(want.Scale(-1)).MaxAbs()
}

// A splitting of order p has local error O(h^{p+1}) against the exact step;
// halving h must shrink the one-step error by about 2^{p+1}.
func TestSchemeOrder(t *testing.T) {
	for _, id := range All() {
		s, err := Lookup(id)
		require.NoError(t, err)
		t.Run(s.Name, func(t *testing.T) {
			switch {
			case id == BO:
				assert.Less(t, oneStepError(t, s, 0.2), 1e-14)
			case id == Split2Modal:
				// The modal factor is only a first-order approximation of e^{hQ}
				// and its local error is O(h³) through the symmetric split.
				e1, e2 := oneStepError(t, s, 0.1), oneStepError(t, s, 0.05)
				assert.Greater(t, e1/e2, 4.0)
			case s.SplitOrder <= 4:
				e1, e2 := oneStepError(t, s, 0.2), oneStepError(t, s, 0.1)
				ratio := e1 / e2
				want := math.Pow(2, float64(s.SplitOrder+1))
				assert.Greater(t, ratio, want/2, "error ratio %.2f", ratio)
			default:
				assert.Less(t, oneStepError(t, s, 0.1), 1e-7)
			}
		})
	}
}

// Against the continuous potential every scheme converges at most at order 2.
func TestEffectiveOrder(t *testing.T) {
	tests := []struct {
		id    ID
		order int
		split int
	}{
		{Split1A, 1, 1},
		{Split2A, 2, 2},
		{Split3S, 2, 3},
		{Split4B, 2, 4},
		{Split8A, 2, 8},
		{BO, 2, 0},
	}
	for _, tt := range tests {
		s, err := Lookup(tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.order, s.Order, s.Name)
		assert.Equal(t, tt.split, s.SplitOrder, s.Name)
	}
}

// Step derivatives must match a central difference of Value.
func TestStepDerivative(t *testing.T) {
	q := []complex128{0.3, 0.5 - 0.2i, 1.1i}
	const h, eps = 0.25, 1e-6
	for _, id := range []ID{Split1A, Split2B, Split3S, Split4A, Split4B, Split2Modal, BO} {
		s, err := Lookup(id)
		require.NoError(t, err)
		t.Run(s.Name, func(t *testing.T) {
			st, err := s.Prepare(q, h, 1)
			require.NoError(t, err)
			for n := range q {
				d := st.At(testLambda).Step(n)
				hi := st.At(testLambda + eps).Value(n)
				lo := st.At(testLambda - eps).Value(n)
				fd := hi.Add(lo.Scale(-1)).Scale(1 / (2 * eps))
				assert.InDelta(t, 0, d.D.Add(fd.Scale(-1)).MaxAbs(), 1e-7, "step %d", n)
				assert.InDelta(t, 0, d.V.Add(st.At(testLambda).Value(n).Scale(-1)).MaxAbs(), 1e-14)
			}
		})
	}
}

// Every transfer matrix of the ZS system is unimodular.
func TestUnimodular(t *testing.T) {
	for _, kappa := range []float64{1, -1} {
		for _, id := range []ID{Split2A, Split2Modal, BO} {
			s, err := Lookup(id)
			require.NoError(t, err)
			st, err := s.Prepare([]complex128{0.4 + 0.4i}, 0.3, kappa)
			require.NoError(t, err)
			det := st.At(complex(-0.2, 0.5)).Value(0).Det()
			assert.InDelta(t, 0, cmplx.Abs(det-1), 1e-12, "%s kappa=%v", s.Name, kappa)
		}
	}
}

func TestModalRange(t *testing.T) {
	_, err := ModalFactor(2, 0.6, -1)
	require.ErrorIs(t, err, ErrModalRange)

	s, err := Lookup(Split2Modal)
	require.NoError(t, err)
	_, err = s.Prepare([]complex128{0, 2}, 0.6, -1)
	require.ErrorIs(t, err, ErrModalRange)

	_, err = ModalFactor(2, 0.6, 1)
	require.NoError(t, err)
}

func TestReflectionParamRoundTrip(t *testing.T) {
	const h = 0.05
	for _, id := range []ID{Split2A, Split2Modal} {
		for _, kappa := range []float64{1, -1} {
			for _, q := range []complex128{0, 1, -2 + 3i, 0.5i} {
				g := ReflectionParam(id, q, h, kappa)
				back, err := SampleFromReflection(id, g, h, kappa)
				require.NoError(t, err)
				assert.InDelta(t, 0, cmplx.Abs(back-q), 1e-12, "%s kappa=%v q=%v", id, kappa, q)
			}
		}
	}

	_, err := SampleFromReflection(Split2A, 1.2, 0.1, -1)
	require.ErrorIs(t, err, ErrUnpeelable)
}

func TestPolyFactorMatchesStrang(t *testing.T) {
	const h = 0.2
	s, err := Lookup(Split2A)
	require.NoError(t, err)
	st, err := s.Prepare([]complex128{testSample}, h, 1)
	require.NoError(t, err)

	c, err := PolyFactor(Split2A, testSample, h, 1)
	require.NoError(t, err)
	half := ExpLambda(h/2, testLambda).V
	want := half.Mul(c).Mul(half)
	assert.InDelta(t, 0, st.At(testLambda).Value(0).Add(want.Scale(-1)).MaxAbs(), 1e-14)

	z := cmplx.Exp(complex(0, 2*h) * testLambda)
	assert.InDelta(t, 0, cmplx.Abs(LambdaFromZ(z, h)-testLambda), 1e-12)
}

func BenchmarkKernelStep(b *testing.B) {
	q := make([]complex128, 1024)
	for i := range q {
		q[i] = complex(1/math.Cosh(float64(i-512)/64), 0)
	}
	s, err := Lookup(Split4B)
	require.NoError(b, err)
	st, err := s.Prepare(q, 1.0/64, 1)
	require.NoError(b, err)

	for b.Loop() {
		k := st.At(testLambda)
		for n := range q {
			_ = k.Step(n)
		}
	}
}
