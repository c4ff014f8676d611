package mathutil

// Series cut-over for Trig: below |ω²h²| = 1e-4 the truncated series is exact
// to double precision.
const trigSeriesThreshold = 1e-4

// Bessel series limits.
const (
	besselMaxTerms     = 500
	besselRelTolerance = 1e-17
)

// Kaiser & Schafer β formula constants.
const (
	kaiserAttHigh        = 50.0
	kaiserAttMedium      = 21.0
	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886
)

// Lanczos approximation, g = 7.
const lanczosG = 7.0

var lanczosCoeffs = [...]float64{
	0.99999999999980993,
	676.5203681218851,
	-1259.1392167224028,
	771.32342877765313,
	-176.61502916214059,
	12.507343278686905,
	-0.13857109526572012,
	9.9843695780195716e-6,
	1.5056327351493116e-7,
}
