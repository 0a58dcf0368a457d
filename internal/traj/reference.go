package traj

import "math"

// Reference holds the sampled trajectory and its derivatives. Each field
// has one row per time step and one column per spatial dimension.
type Reference struct {
	Times []float64
	Pos   [][]float64
	Vel   [][]float64
	Acc   [][]float64
	Jerk  [][]float64
	Snap  [][]float64
}

// Steps returns the number of samples, including both endpoints.
func (r *Reference) Steps() int {
	return len(r.Times)
}

// Dims returns the spatial dimension of the trajectory.
func (r *Reference) Dims() int {
	if len(r.Pos) == 0 {
		return 0
	}
	return len(r.Pos[0])
}

// Generate samples a rest-to-rest translation of length dist over the
// given duration on a dt grid. In three dimensions the motion runs along
// the y axis, otherwise along the first axis; the remaining axes stay
// zero.
func Generate(dist, duration, dt float64, dims int) (*Reference, error) {
	p, err := FitBoundary(0, dist, duration)
	if err != nil {
		return nil, err
	}

	axis := 0
	if dims == 3 {
		axis = 1
	}

	derivs := make([]Poly, 5)
	derivs[0] = p
	for i := 1; i < 5; i++ {
		derivs[i] = derivs[i-1].Derivative()
	}

	n := int(math.Round(duration/dt)) + 1
	ref := &Reference{
		Times: make([]float64, n),
		Pos:   make([][]float64, n),
		Vel:   make([][]float64, n),
		Acc:   make([][]float64, n),
		Jerk:  make([][]float64, n),
		Snap:  make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		t := float64(i) * dt
		ref.Times[i] = t

		rows := [][][]float64{ref.Pos, ref.Vel, ref.Acc, ref.Jerk, ref.Snap}
		for d, field := range rows {
			row := make([]float64, dims)
			row[axis] = derivs[d].Eval(t)
			field[i] = row
		}
	}
	return ref, nil
}
