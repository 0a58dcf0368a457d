package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// ConvergenceRate fits an exponential model e_k = c * r^k to the per-trial
// mean errors and returns the per-trial contraction factor r. A rate below
// one means the learning converges. Trials with non-positive error are
// skipped; the fit needs at least two usable points, otherwise ok is false.
func ConvergenceRate(means []float64) (rate float64, ok bool) {
	var xs, ys []float64
	for i, m := range means {
		if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, math.Log(m))
	}
	if len(xs) < 2 {
		return 0, false
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return math.Exp(slope), true
}

// ErrorRatios returns the trial-to-trial error ratios e_{k+1}/e_k. Entries
// following a zero error are reported as zero.
func ErrorRatios(means []float64) []float64 {
	if len(means) < 2 {
		return nil
	}
	ratios := make([]float64, len(means)-1)
	for i := 1; i < len(means); i++ {
		if means[i-1] == 0 {
			ratios[i-1] = 0
			continue
		}
		ratios[i-1] = means[i] / means[i-1]
	}
	return ratios
}
