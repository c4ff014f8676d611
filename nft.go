package nft

import (
	"math"
	"math/cmplx"

	"github.com/tphakala/go-nft/internal/discretization"
)

// Kappa selects the sign of the nonlinearity.
type Kappa int

const (
	// Focusing is κ = +1.
	Focusing Kappa = 1

	// Defocusing is κ = -1.
	Defocusing Kappa = -1
)

func (k Kappa) String() string {
	switch k {
	case Focusing:
		return "focusing"
	case Defocusing:
		return "defocusing"
	default:
		return "invalid"
	}
}

func (k Kappa) validate() error {
	if k != Focusing && k != Defocusing {
		return invalidf("kappa must be +1 or -1, got %d", int(k))
	}
	return nil
}

// TimeWindow is the time interval of the samples. With vanishing boundaries
// the first and last samples sit at T1 and T2; with periodic boundaries T2 is
// where sample D would sit, one period after T1.
type TimeWindow struct {
	T1, T2 float64
}

func (tw TimeWindow) validate() error {
	if math.IsNaN(tw.T1) || math.IsInf(tw.T1, 0) || math.IsNaN(tw.T2) || math.IsInf(tw.T2, 0) {
		return invalidf("time window [%g, %g] is not finite", tw.T1, tw.T2)
	}
	if !(tw.T1 < tw.T2) {
		return invalidf("time window needs T1 < T2, got [%g, %g]", tw.T1, tw.T2)
	}
	return nil
}

// FrequencyWindow is the grid of M equally spaced real frequencies from Xi1
// to Xi2. A single node sits at Xi1.
type FrequencyWindow struct {
	Xi1, Xi2 float64
	M        int
}

func (fw FrequencyWindow) validate() error {
	if fw.M < 1 {
		return invalidf("frequency grid needs M >= 1, got %d", fw.M)
	}
	if math.IsNaN(fw.Xi1) || math.IsInf(fw.Xi1, 0) || math.IsNaN(fw.Xi2) || math.IsInf(fw.Xi2, 0) {
		return invalidf("frequency window [%g, %g] is not finite", fw.Xi1, fw.Xi2)
	}
	if fw.M > 1 && !(fw.Xi1 < fw.Xi2) {
		return invalidf("frequency window needs Xi1 < Xi2, got [%g, %g]", fw.Xi1, fw.Xi2)
	}
	return nil
}

// Discretization identifies a one-step scheme by name, e.g. "2SPLIT4B". The
// zero value selects the transform's default.
type Discretization = discretization.ID

// Discretization schemes.
const (
	Split1A     = discretization.Split1A
	Split1B     = discretization.Split1B
	Split2A     = discretization.Split2A
	Split2B     = discretization.Split2B
	Split2S     = discretization.Split2S
	Split2Modal = discretization.Split2Modal
	Split3A     = discretization.Split3A
	Split3B     = discretization.Split3B
	Split3S     = discretization.Split3S
	Split4A     = discretization.Split4A
	Split4B     = discretization.Split4B
	Split5A     = discretization.Split5A
	Split5B     = discretization.Split5B
	Split6A     = discretization.Split6A
	Split6B     = discretization.Split6B
	Split7A     = discretization.Split7A
	Split7B     = discretization.Split7B
	Split8A     = discretization.Split8A
	Split8B     = discretization.Split8B
	BO          = discretization.BO
)

// ParseDiscretization resolves a scheme name (case-insensitive).
func ParseDiscretization(name string) (Discretization, error) {
	id, err := discretization.Parse(name)
	if err != nil {
		return id, classify(err)
	}
	return id, nil
}

// Discretizations lists every scheme.
func Discretizations() []Discretization {
	return discretization.All()
}

// SchemeOrder returns the order at which a scheme's results converge to those
// of the continuous potential. Sampling q at cell midpoints caps it at 2, so
// only the Lie splittings report less. Richardson extrapolation uses it.
func SchemeOrder(id Discretization) (int, error) {
	s, err := discretization.Lookup(id)
	if err != nil {
		return 0, classify(err)
	}
	return s.Order, nil
}

// SchemeSplitOrder returns the order to which one step of a splitting scheme
// approximates the exact exponential of the sampled matrix. It is 0 for BO,
// which computes that exponential directly.
func SchemeSplitOrder(id Discretization) (int, error) {
	s, err := discretization.Lookup(id)
	if err != nil {
		return 0, classify(err)
	}
	return s.SplitOrder, nil
}

func validateSamples(q []complex128, minLen int) error {
	if len(q) < minLen {
		return invalidf("need at least %d samples, got %d", minLen, len(q))
	}
	for n, v := range q {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return invalidf("sample %d is not finite", n)
		}
	}
	return nil
}

func isFinite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
