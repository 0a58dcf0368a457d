// Package traj generates the reference trajectories the learning loop
// tracks: a rest-to-rest polynomial translation with continuous
// derivatives up to jerk, sampled on the simulation grid.
package traj

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Poly is a polynomial in time with ascending coefficients:
// p(t) = C[0] + C[1] t + C[2] t^2 + ...
type Poly struct {
	C []float64
}

// Eval evaluates the polynomial at t.
func (p Poly) Eval(t float64) float64 {
	v := 0.0
	for i := len(p.C) - 1; i >= 0; i-- {
		v = v*t + p.C[i]
	}
	return v
}

// Derivative returns the polynomial's derivative.
func (p Poly) Derivative() Poly {
	if len(p.C) <= 1 {
		return Poly{C: []float64{0}}
	}
	d := make([]float64, len(p.C)-1)
	for i := 1; i < len(p.C); i++ {
		d[i-1] = float64(i) * p.C[i]
	}
	return Poly{C: d}
}

// FitBoundary fits a degree-7 polynomial moving from start to end over
// the given duration, with velocity, acceleration and jerk zero at both
// ends. The fit is done in normalized time and rescaled, so the
// conditioning does not depend on the duration.
func FitBoundary(start, end, duration float64) (Poly, error) {
	if duration <= 0 {
		return Poly{}, fmt.Errorf("trajectory duration must be positive, got %v", duration)
	}

	// rows: derivatives 0..3 at tau=0, then at tau=1
	a := mat.NewDense(8, 8, nil)
	for k := 0; k < 4; k++ {
		a.Set(k, k, falling(k, k))
		for i := k; i < 8; i++ {
			a.Set(4+k, i, falling(i, k))
		}
	}

	b := mat.NewVecDense(8, nil)
	b.SetVec(0, start)
	b.SetVec(4, end)

	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return Poly{}, fmt.Errorf("boundary polynomial solve: %w", err)
	}

	c := make([]float64, 8)
	scale := 1.0
	for i := 0; i < 8; i++ {
		c[i] = x.AtVec(i) * scale
		scale /= duration
	}
	return Poly{C: c}, nil
}

// falling returns the k-th derivative factor of t^i: i (i-1) ... (i-k+1).
func falling(i, k int) float64 {
	f := 1.0
	for m := 0; m < k; m++ {
		f *= float64(i - m)
	}
	return f
}
