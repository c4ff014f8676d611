// Package filter designs the Kaiser-windowed anti-aliasing filter used when a
// potential is down-sampled for coarse bound-state localization.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-nft/internal/mathutil"
	"github.com/tphakala/go-nft/internal/simdops"
)

const (
	minFilterTaps = 3
	maxFilterTaps = 8191

	// Zero crossings of the sinc kept on each side of the centre tap per unit
	// of decimation factor.
	zeroCrossingsPerSide = 4

	// Stopband attenuation of the decimation filter in dB.
	decimationAttenuation = 80.0

	sincZeroThreshold = 1e-10
)

// KaiserWindow returns a symmetric Kaiser window with w[centre] = 1.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}
	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}
	alpha := float64(length-1) / 2
	i0Beta := mathutil.BesselI0(beta)
	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) / i0Beta
	}
	return window
}

// Params describes a lowpass design.
type Params struct {
	// NumTaps is the filter length; odd lengths give an integer group delay.
	NumTaps int

	// Cutoff is the normalised cutoff in cycles per sample, in (0, 0.5).
	Cutoff float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64
}

// Validate checks the design parameters.
func (p *Params) Validate() error {
	if p.NumTaps < minFilterTaps || p.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter length %d outside [%d, %d]", p.NumTaps, minFilterTaps, maxFilterTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}
	return nil
}

// DesignLowPass returns a windowed-sinc lowpass with unit DC gain.
func DesignLowPass(p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	taps := make([]float64, p.NumTaps)
	centre := float64(p.NumTaps-1) / 2
	for n := range taps {
		x := float64(n) - centre
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = 2 * p.Cutoff
		} else {
			sinc = math.Sin(2*math.Pi*p.Cutoff*x) / (math.Pi * x)
		}
		taps[n] = sinc * window[n]
	}
	if sum := simdops.Sum(taps); math.Abs(sum) > sincZeroThreshold {
		simdops.Scale(taps, taps, 1/sum)
	}
	return taps, nil
}

// Decimate lowpass-filters q and keeps every factor-th sample starting with
// q[0], so output sample k sits at the time of input sample k·factor. Outside
// its support the signal is zero, or wraps around when periodic is set.
// factor ≤ 1 returns a copy.
func Decimate(q []complex128, factor int, periodic bool) ([]complex128, error) {
	if factor <= 1 {
		return append([]complex128(nil), q...), nil
	}
	taps, err := DesignLowPass(Params{
		NumTaps:     2*zeroCrossingsPerSide*factor + 1,
		Cutoff:      0.5 / float64(factor),
		Attenuation: decimationAttenuation,
	})
	if err != nil {
		return nil, err
	}

	pad := len(taps) / 2
	re, im := simdops.Split(q)
	reP := make([]float64, len(q)+2*pad)
	imP := make([]float64, len(q)+2*pad)
	copy(reP[pad:], re)
	copy(imP[pad:], im)
	if periodic {
		n := len(q)
		for k := 1; k <= pad; k++ {
			left := ((-k)%n + n) % n
			right := (k - 1) % n
			reP[pad-k], imP[pad-k] = re[left], im[left]
			reP[pad+n+k-1], imP[pad+n+k-1] = re[right], im[right]
		}
	}

	reF := make([]float64, len(q))
	imF := make([]float64, len(q))
	simdops.ConvolveValid(reF, reP, taps)
	simdops.ConvolveValid(imF, imP, taps)

	out := make([]complex128, 0, (len(q)+factor-1)/factor)
	for n := 0; n < len(q); n += factor {
		out = append(out, complex(reF[n], imF[n]))
	}
	return out, nil
}
