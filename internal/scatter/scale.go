package scatter

import (
	"math"

	"github.com/tphakala/go-nft/internal/mathutil"
)

// Running products are renormalised by an exact power of two once their
// largest entry leaves [2^-rescaleExp, 2^rescaleExp]. Power-of-two scaling is
// lossless, so normalised and unnormalised runs agree bit for bit whenever the
// latter does not overflow.
const rescaleExp = 64

var (
	rescaleHigh = math.Ldexp(1, rescaleExp)
	rescaleLow  = math.Ldexp(1, -rescaleExp)
)

// rescale divides m by 2^e so that its largest entry lies in [0.5, 1) and
// returns e. Matrices inside the band are returned unchanged with e = 0.
func rescale(m mathutil.Mat2) (mathutil.Mat2, int) {
	mx := m.MaxAbs()
	if mx == 0 || (mx <= rescaleHigh && mx >= rescaleLow) || math.IsInf(mx, 0) || math.IsNaN(mx) {
		return m, 0
	}
	_, e := math.Frexp(mx)
	s := complex(math.Ldexp(1, -e), 0)
	return m.Scale(s), e
}

func rescaleDual(d mathutil.Dual2) (mathutil.Dual2, int) {
	mx := math.Max(d.V.MaxAbs(), d.D.MaxAbs())
	if mx == 0 || (mx <= rescaleHigh && mx >= rescaleLow) || math.IsInf(mx, 0) || math.IsNaN(mx) {
		return d, 0
	}
	_, e := math.Frexp(mx)
	return d.Scale(complex(math.Ldexp(1, -e), 0)), e
}
