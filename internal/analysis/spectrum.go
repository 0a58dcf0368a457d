package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the one-sided magnitude spectrum of the series after a
// Hann window, together with the frequency resolution in hertz. The series
// is not padded.
func Spectrum(series []float64, dt float64) (mags []float64, df float64) {
	n := len(series)
	if n < 2 || dt <= 0 {
		return nil, 0
	}
	windowed := make([]float64, n)
	for i, v := range series {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}
	spec := fft.FFTReal(windowed)
	mags = make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplx.Abs(spec[i])
	}
	return mags, 1 / (dt * float64(n))
}

// DominantFrequency returns the frequency of the strongest non-DC bin.
func DominantFrequency(mags []float64, df float64) float64 {
	best := 0
	for i := 1; i < len(mags); i++ {
		if best == 0 || mags[i] > mags[best] {
			best = i
		}
	}
	return float64(best) * df
}
