package nft

import "github.com/tphakala/go-nft/internal/discretization"

// Option defaults.
const (
	defaultForwardScheme  = discretization.Split4B
	defaultInverseScheme  = discretization.Split2A
	defaultPeriodicScheme = discretization.Split4A

	defaultNiter               = 10
	defaultDegeneracyTolerance = 1e-12

	defaultMaxIter          = 100
	defaultInverseTolerance = 1e-10
	defaultOversampling     = 8

	defaultMaxEvaluations = 20
)

// Window used by the convenience functions.
const (
	DefaultXi1  = -2.0
	DefaultXi2  = 2.0
	DefaultM    = 128
	DefaultKMax = 128
)

// Richardson extrapolation needs a coarse grid of at least two samples.
const minRichardsonSamples = 4
