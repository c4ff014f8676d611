package nft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-nft/internal/engine"
	"github.com/tphakala/go-nft/internal/inverse"
)

func TestForwardOptions_Defaults(t *testing.T) {
	for name, opts := range map[string]*ForwardOptions{"nil": nil, "zero": {}} {
		t.Run(name, func(t *testing.T) {
			p, err := opts.resolve()
			require.NoError(t, err)
			assert.Equal(t, defaultForwardScheme, p.scheme.ID)
			assert.Equal(t, engine.SubsampleAndRefine, p.discrete.Localization)
			assert.Equal(t, engine.FilterFull, p.discrete.Filtering)
			assert.True(t, p.discrete.Norming)
			assert.False(t, p.discrete.Residues)
			assert.True(t, p.continuous.Reflection)
			assert.False(t, p.continuous.AB)
			assert.Equal(t, defaultNiter, p.discrete.Niter)
			assert.InDelta(t, defaultDegeneracyTolerance, p.continuous.DegeneracyTolerance, 0)
			assert.True(t, p.normalize)
			assert.False(t, p.richardson)
		})
	}
}

// Explicit fields survive the merge with defaults.
func TestForwardOptions_Overrides(t *testing.T) {
	p, err := (&ForwardOptions{
		Discretization:     BO,
		Localization:       Newton,
		Filtering:          FilterNone,
		DiscreteSpectrum:   NormingAndResidues,
		ContinuousSpectrum: AB,
		Niter:              3,
		Normalization:      Off,
		Richardson:         On,
	}).resolve()
	require.NoError(t, err)
	assert.Equal(t, BO, p.scheme.ID)
	assert.Equal(t, engine.Newton, p.discrete.Localization)
	assert.Equal(t, engine.FilterNone, p.discrete.Filtering)
	assert.True(t, p.discrete.Norming)
	assert.True(t, p.discrete.Residues)
	assert.False(t, p.continuous.Reflection)
	assert.True(t, p.continuous.AB)
	assert.Equal(t, 3, p.discrete.Niter)
	assert.False(t, p.normalize)
	assert.True(t, p.richardson)

	p, err = (&ForwardOptions{DiscreteSpectrum: SkipDiscrete, ContinuousSpectrum: SkipContinuous}).resolve()
	require.NoError(t, err)
	assert.True(t, p.skipDiscrete)
	assert.True(t, p.skipContinuous)
}

func TestForwardOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts ForwardOptions
	}{
		{"scheme", ForwardOptions{Discretization: Discretization(99)}},
		{"localization", ForwardOptions{Localization: 9}},
		{"filtering", ForwardOptions{Filtering: -1}},
		{"discrete", ForwardOptions{DiscreteSpectrum: 7}},
		{"continuous", ForwardOptions{ContinuousSpectrum: 7}},
		{"niter", ForwardOptions{Niter: -1}},
		{"workers", ForwardOptions{Workers: -2}},
		{"tolerance", ForwardOptions{DegeneracyTolerance: math.NaN()}},
		{"seed", ForwardOptions{Seeds: []complex128{complex(math.Inf(1), 0)}}},
		{"toggle", ForwardOptions{Richardson: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.opts.Validate(), ErrInvalidArgument)
		})
	}
	require.NoError(t, (*ForwardOptions)(nil).Validate())
}

func TestInverseOptions(t *testing.T) {
	p, err := (*InverseOptions)(nil).resolve()
	require.NoError(t, err)
	assert.Equal(t, Split2A, p.scheme)
	assert.Equal(t, inverse.Reflection, p.input)
	assert.Equal(t, inverse.Cepstrum, p.method)
	assert.Equal(t, defaultMaxIter, p.maxIter)
	assert.Equal(t, defaultOversampling, p.oversampling)
	assert.InDelta(t, defaultInverseTolerance, p.tolerance, 0)

	p, err = (&InverseOptions{
		Discretization:     Split2Modal,
		ContinuousSpectrum: InverseBOfXi,
		Method:             IterativeDefectCorrection,
		DiscreteSpectrum:   InverseResidues,
	}).resolve()
	require.NoError(t, err)
	assert.Equal(t, Split2Modal, p.scheme)
	assert.Equal(t, inverse.BOfXi, p.input)
	assert.Equal(t, inverse.DefectCorrection, p.method)
	assert.True(t, p.residues)

	invalid := []InverseOptions{
		{Discretization: Split4B},
		{ContinuousSpectrum: InverseBOfTau},
		{ContinuousSpectrum: 12},
		{Method: 3},
		{DiscreteSpectrum: 3},
		{MaxIter: -1},
		{Oversampling: -1},
		{Tolerance: -1},
	}
	for i, o := range invalid {
		require.ErrorIs(t, o.Validate(), ErrInvalidArgument, "case %d", i)
	}
}

func TestPeriodicOptions(t *testing.T) {
	p, err := (*PeriodicOptions)(nil).resolve()
	require.NoError(t, err)
	assert.Equal(t, defaultPeriodicScheme, p.scheme.ID)
	assert.Equal(t, engine.Mixed, p.req.Localization)
	assert.Equal(t, engine.PeriodicFilterAuto, p.req.Filtering)
	assert.Equal(t, defaultMaxEvaluations, p.req.MaxEvaluations)
	assert.True(t, math.IsInf(p.req.BoundingBox[0], -1))

	p, err = (&PeriodicOptions{
		Localization: GridSearch,
		Filtering:    PeriodicFilterManual,
		BoundingBox:  &Box{ReMin: -1, ReMax: 1, ImMin: 0, ImMax: 2},
	}).resolve()
	require.NoError(t, err)
	assert.Equal(t, engine.GridSearch, p.req.Localization)
	assert.Equal(t, [4]float64{-1, 1, 0, 2}, p.req.BoundingBox)

	invalid := []PeriodicOptions{
		{Localization: 4},
		{Filtering: 4},
		{MaxEvaluations: -1},
		{BoundingBox: &Box{ReMin: 1, ReMax: -1}},
		{BoundingBox: &Box{ImMin: math.NaN()}},
		{Normalization: 3},
	}
	for i, o := range invalid {
		require.ErrorIs(t, o.Validate(), ErrInvalidArgument, "case %d", i)
	}
}

func TestParseEnums(t *testing.T) {
	loc, err := ParseBoundStateLocalization("Subsample_And-Refine")
	require.NoError(t, err)
	assert.Equal(t, SubsampleAndRefine, loc)
	assert.Equal(t, "subsampleandrefine", loc.String())

	f, err := ParseBoundStateFiltering("")
	require.NoError(t, err)
	assert.Equal(t, FilteringDefault, f)
	assert.Equal(t, "default", f.String())

	m, err := ParseInversionMethod("Defect Correction")
	require.NoError(t, err)
	assert.Equal(t, IterativeDefectCorrection, m)

	tg, err := ParseToggle("OFF")
	require.NoError(t, err)
	assert.Equal(t, Off, tg)

	_, err = ParsePeriodicFiltering("sometimes")
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "invalid(9)", PeriodicFiltering(9).String())
}

func TestParseDiscretization(t *testing.T) {
	id, err := ParseDiscretization("2split4b")
	require.NoError(t, err)
	assert.Equal(t, Split4B, id)

	_, err = ParseDiscretization("euler")
	require.ErrorIs(t, err, ErrInvalidArgument)

	order, err := SchemeOrder(Split6A)
	require.NoError(t, err)
	assert.Equal(t, 2, order)
	split, err := SchemeSplitOrder(Split6A)
	require.NoError(t, err)
	assert.Equal(t, 6, split)
	_, err = SchemeSplitOrder(Discretization(99))
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Len(t, Discretizations(), 20)
}
