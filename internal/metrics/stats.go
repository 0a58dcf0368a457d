// Package metrics provides per-trial statistics and streaming metrics
// over simulated trajectories.
package metrics

import "math"

// MeanAbs averages the absolute value of every entry across all rows.
func MeanAbs(rows [][]float64) float64 {
	sum := 0.0
	n := 0
	for _, row := range rows {
		for _, v := range row {
			sum += math.Abs(v)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MaxAbs returns the largest absolute entry across all rows.
func MaxAbs(rows [][]float64) float64 {
	worst := 0.0
	for _, row := range rows {
		for _, v := range row {
			if a := math.Abs(v); a > worst {
				worst = a
			}
		}
	}
	return worst
}

// RMS returns the root mean square over every entry across all rows.
func RMS(rows [][]float64) float64 {
	sum := 0.0
	n := 0
	for _, row := range rows {
		for _, v := range row {
			sum += v * v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(n))
}
