package engine

import (
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/scatter"
	"gonum.org/v1/gonum/floats"
)

// ContinuousRequest selects the outputs of a continuous-spectrum sweep.
type ContinuousRequest struct {
	// Xi are the real frequency nodes.
	Xi []float64

	Reflection bool
	AB         bool

	// Nodes with |a| at or below this value are degenerate.
	DegeneracyTolerance float64

	Workers int
}

// Continuous holds one sweep. Reflection, A and B are nil unless requested.
type Continuous struct {
	Reflection []complex128
	A          []complex128
	B          []complex128

	// Degenerate lists the nodes where a vanished or the propagation left the
	// floating-point range. Their outputs are zero.
	Degenerate []int
}

// Nodes returns m equally spaced points from xi1 to xi2; a single node sits
// at xi1.
func Nodes(xi1, xi2 float64, m int) []float64 {
	xi := make([]float64, m)
	if m == 1 {
		xi[0] = xi1
		return xi
	}
	return floats.Span(xi, xi1, xi2)
}

// ContinuousSpectrum evaluates a(ξ), b(ξ) and b(ξ)/a(ξ) at every node.
func ContinuousSpectrum(p *scatter.Propagator, req ContinuousRequest) (*Continuous, error) {
	m := len(req.Xi)
	a := make([]complex128, m)
	b := make([]complex128, m)
	err := parallelFor(req.Workers, m, func(i int) error {
		a[i], b[i] = p.Coefficients(complex(req.Xi[i], 0))
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &Continuous{}
	if req.Reflection {
		out.Reflection = make([]complex128, m)
	}
	for i := range m {
		finite := mathutil.IsFiniteComplex(a[i]) && mathutil.IsFiniteComplex(b[i])
		if !finite || cmplx.Abs(a[i]) <= req.DegeneracyTolerance {
			out.Degenerate = append(out.Degenerate, i)
			if !finite {
				a[i], b[i] = 0, 0
			}
			continue
		}
		if req.Reflection {
			out.Reflection[i] = b[i] / a[i]
		}
	}
	if req.AB {
		out.A, out.B = a, b
	}
	return out, nil
}
