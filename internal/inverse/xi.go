// Package inverse reconstructs a sampled potential from its nonlinear Fourier
// spectrum: the reflection coefficient is turned into a polynomial transfer
// matrix that is layer-peeled sample by sample, and bound states are added by
// Darboux transforms.
package inverse

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the inverse engine.
var (
	ErrWindow      = errors.New("invalid inverse window")
	ErrNotPeelable = errors.New("spectrum cannot be layer-peeled")
)

// Relative tolerance when comparing a caller's window with Xi.
const windowTolerance = 1e-9

// Xi returns the frequency window whose m nodes map to the m-th roots of
// unity, up to sign, of z = e^{2iξh} for d samples on [t1, t2]:
// Xi1 = -π/(2h) and Xi2 = Xi1 + (m-1)·π/(m·h).
func Xi(d int, t1, t2 float64, m int) (xi1, xi2 float64, err error) {
	if d < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 samples, got %d", ErrWindow, d)
	}
	if !(t1 < t2) || math.IsInf(t2-t1, 0) {
		return 0, 0, fmt.Errorf("%w: time window [%g, %g]", ErrWindow, t1, t2)
	}
	if m < d {
		return 0, 0, fmt.Errorf("%w: M = %d must be at least D = %d", ErrWindow, m, d)
	}
	h := (t2 - t1) / float64(d-1)
	xi1 = -math.Pi / (2 * h)
	xi2 = xi1 + float64(m-1)*math.Pi/(float64(m)*h)
	return xi1, xi2, nil
}

// CheckWindow verifies that [xi1, xi2] with m nodes matches Xi.
func CheckWindow(d int, t1, t2 float64, m int, xi1, xi2 float64) error {
	want1, want2, err := Xi(d, t1, t2, m)
	if err != nil {
		return err
	}
	scale := math.Max(math.Abs(want1), math.Abs(want2))
	if math.Abs(xi1-want1) > windowTolerance*scale || math.Abs(xi2-want2) > windowTolerance*scale {
		return fmt.Errorf("%w: got [%g, %g], want [%g, %g]", ErrWindow, xi1, xi2, want1, want2)
	}
	return nil
}
