package engine

// Bound-state search.
const (
	// Newton refinement stops once the step falls below this fraction of
	// 1+|λ|.
	newtonTolerance = 1e-10

	// Candidates closer than this fraction of 1+|λ| are merged by full
	// filtering.
	mergeTolerance = 1e-6

	// Slack on the |Im λ| ≤ max|q| bound, which holds exactly only for the
	// continuous-time problem.
	imagBoundSlack = 1.05

	// Fast eigenvalue localization factors a(z) of at most this many
	// samples; the companion eigenproblem is O(D³).
	maxFastEigenvalue = 256

	// Subsample-and-refine keeps min(D, max(minSubsample, √D·log2 D)) samples,
	// never more than maxSubsample.
	minSubsample = 16
	maxSubsample = 128

	// Default Newton seed lattice when no seeds are given.
	seedsReal = 9
	seedsImag = 4
)

// Periodic spectra.
const (
	// Residual below which a periodic Newton iteration is accepted even if
	// the step is still large, as happens near double points.
	periodicResidual = 1e-10

	// Real-axis grid density for grid search: points per sample, capped.
	gridPointsPerSample = 8
	maxGridPoints       = 8192

	// A grid minimum of |Δ²-1| or |M12| is a candidate when below this value.
	gridMinimumThreshold = 0.1

	// Capacities of the main and auxiliary spectra per sample.
	mainCapacityPerSample = 4
	auxCapacityPerSample  = 2
)

// Absolute slack on |Im λ| for periodic candidates of a vanishing potential,
// whose spectrum lies on the real axis up to rounding.
const periodicImagSlack = 1e-6
