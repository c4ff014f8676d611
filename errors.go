package nft

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/inverse"
	"github.com/tphakala/go-nft/internal/scatter"
)

// Errors returned by the transforms. A call that returns an error returns no
// result.
var (
	// ErrInvalidArgument indicates inputs or options the transform cannot
	// accept: lengths, windows, enum values, κ, or spectra that do not
	// describe a potential.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFatal indicates an internal failure the caller cannot correct.
	ErrFatal = errors.New("fatal error")
)

// Status collects the recoverable conditions of a completed transform.
type Status uint8

const (
	// StatusDegenerate marks continuous-spectrum nodes where a(ξ) vanished;
	// see ForwardResult.DegenerateNodes.
	StatusDegenerate Status = 1 << iota

	// StatusNonConvergence marks Newton seeds that were dropped or an
	// inverse iteration that hit its cap.
	StatusNonConvergence

	// StatusCapacityExceeded marks spectra truncated to their capacity.
	StatusCapacityExceeded
)

var statusNames = []struct {
	bit  Status
	name string
}{
	{StatusDegenerate, "degenerate"},
	{StatusNonConvergence, "non-convergence"},
	{StatusCapacityExceeded, "capacity-exceeded"},
}

// OK reports whether no condition is set.
func (s Status) OK() bool { return s == 0 }

// Has reports whether every bit of flag is set.
func (s Status) Has(flag Status) bool { return s&flag == flag }

// String lists the set conditions separated by "|", or "ok".
func (s Status) String() string {
	if s.OK() {
		return "ok"
	}
	var parts []string
	for _, n := range statusNames {
		if s.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// invalidf wraps a formatted message with ErrInvalidArgument.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// classify maps an internal error into the public taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrFatal):
		return err
	case errors.Is(err, discretization.ErrUnknownScheme),
		errors.Is(err, discretization.ErrModalRange),
		errors.Is(err, discretization.ErrUnpeelable),
		errors.Is(err, scatter.ErrNoSamples),
		errors.Is(err, scatter.ErrInvalidStep),
		errors.Is(err, scatter.ErrInvalidKappa),
		errors.Is(err, inverse.ErrWindow),
		errors.Is(err, inverse.ErrNotPeelable):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	default:
		return fmt.Errorf("%w: %w", ErrFatal, err)
	}
}
