package nft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-nft/internal/discretization"
	"github.com/tphakala/go-nft/internal/inverse"
	"github.com/tphakala/go-nft/internal/poly"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{0, "ok"},
		{StatusDegenerate, "degenerate"},
		{StatusNonConvergence | StatusCapacityExceeded, "non-convergence|capacity-exceeded"},
		{StatusDegenerate | StatusNonConvergence | StatusCapacityExceeded, "degenerate|non-convergence|capacity-exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.String())
			assert.Equal(t, tt.s == 0, tt.s.OK())
		})
	}
	s := StatusDegenerate | StatusCapacityExceeded
	assert.True(t, s.Has(StatusDegenerate))
	assert.False(t, s.Has(StatusNonConvergence))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	for _, err := range []error{
		discretization.ErrModalRange,
		discretization.ErrUnknownScheme,
		inverse.ErrWindow,
		inverse.ErrNotPeelable,
	} {
		got := classify(err)
		require.ErrorIs(t, got, ErrInvalidArgument)
		require.ErrorIs(t, got, err)
		assert.NotErrorIs(t, got, ErrFatal)
	}

	got := classify(poly.ErrDegeneratePolynomial)
	require.ErrorIs(t, got, ErrFatal)
	require.ErrorIs(t, got, poly.ErrDegeneratePolynomial)

	already := invalidf("bad %d", 3)
	assert.Equal(t, already, classify(already))
	assert.EqualError(t, already, "invalid argument: bad 3")

	assert.ErrorIs(t, classify(errors.New("boom")), ErrFatal)
}
