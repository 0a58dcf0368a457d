package physics

import "math"

// Dot3 returns the dot product of two 3-vectors.
func Dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross3 returns the cross product a x b.
func Cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm3 returns the Euclidean norm of a 3-vector.
func Norm3(a []float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

// Scale3 returns s*a as a new 3-vector.
func Scale3(a []float64, s float64) []float64 {
	return []float64{s * a[0], s * a[1], s * a[2]}
}

// Add3 returns a + b as a new 3-vector.
func Add3(a, b []float64) []float64 {
	return []float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub3 returns a - b as a new 3-vector.
func Sub3(a, b []float64) []float64 {
	return []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}
