package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/integrators"
)

// Options carries the discretization and disturbance parameters shared by
// every variant.
type Options struct {
	// Dt is the simulation step the feedback laws integrate with.
	Dt float64

	// ThrustDist scales the first channel of the applied control, modeling
	// an actuator gain error. 1 means no disturbance.
	ThrustDist float64

	// DragDist subtracts velocity-proportional drag from the true dynamics.
	DragDist float64

	// ModelDrag makes the nominal model (feed-forward inversion and
	// learning operator) account for the drag term.
	ModelDrag bool

	Integrator dynamo.Integrator
}

func (o Options) withDefaults() Options {
	if o.Dt <= 0 {
		o.Dt = 0.02
	}
	if o.ThrustDist == 0 {
		o.ThrustDist = 1.0
	}
	if o.Integrator == nil {
		o.Integrator = integrators.NewEuler()
	}
	return o
}

// modelDrag returns the drag coefficient the nominal model uses.
func (o Options) modelDrag() float64 {
	if o.ModelDrag {
		return o.DragDist
	}
	return 0
}

// New returns the system variant with the given name.
func New(name string, opts Options) (dynamo.System, error) {
	opts = opts.withDefaults()
	switch name {
	case "trivial":
		return newTrivial(opts), nil
	case "simple":
		return newSimple(opts), nil
	case "linear":
		return newLinear(opts, false), nil
	case "linearpos":
		return newLinear(opts, true), nil
	case "nl1d":
		return newNL1D(opts), nil
	case "2dpos":
		return newPlanar(opts), nil
	case "3d":
		return newQuad3D(opts), nil
	case "3ddedi":
		return newDEDI(opts), nil
	case "3ddediv":
		return newDEDIV(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", dynamo.ErrUnknownSystem, name, Names())
	}
}

// Names lists the available variants.
func Names() []string {
	return []string{
		"trivial", "simple", "linear", "linearpos", "nl1d",
		"2dpos", "3d", "3ddedi", "3ddediv",
	}
}

// Condition trims the desired reference in place the way each variant's
// update expects: the position-tracking variants above the trivial one
// ignore the first few desired positions, the small-angle 1-D variants
// ignore the second desired acceleration sample. Feed-forward seeding must
// read the reference before conditioning.
func Condition(name string, pos, acc [][]float64) {
	switch name {
	case "linearpos", "nl1d", "2dpos", "3d", "3ddedi", "3ddediv":
		n := len(pos) - 1
		if n > 4 {
			n = 4
		}
		for i := 0; i < n; i++ {
			zeroRow(pos[i])
		}
	}
	switch name {
	case "linear", "linearpos":
		if len(acc) > 1 {
			zeroRow(acc[1])
		}
	}
}

func zeroRow(r []float64) {
	for i := range r {
		r[i] = 0
	}
}

// rollout advances the disturbed plant for round(duration/dt) steps from x0
// and returns all N+1 states.
func rollout(dyn dynamo.Dynamics, integ dynamo.Integrator, x0 dynamo.State, duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	n := int(math.Round(duration / dt))
	states := make([]dynamo.State, 0, n+1)
	x := x0.Clone()
	states = append(states, x.Clone())
	for i := 0; i < n; i++ {
		u := provider(x)
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
		states = append(states, x.Clone())
	}
	return states
}

// positionRows copies the leading dims entries of every state.
func positionRows(states []dynamo.State, dims int) [][]float64 {
	rows := make([][]float64, len(states))
	for i, x := range states {
		row := make([]float64, dims)
		copy(row, x[:dims])
		rows[i] = row
	}
	return rows
}

// diffRows finite-differences the state columns [lo, hi) and pads a zero
// row so the result has one row per sample.
func diffRows(states []dynamo.State, lo, hi int, dt float64) [][]float64 {
	rows := make([][]float64, len(states))
	for i := 0; i < len(states)-1; i++ {
		row := make([]float64, hi-lo)
		for j := lo; j < hi; j++ {
			row[j-lo] = (states[i+1][j] - states[i][j]) / dt
		}
		rows[i] = row
	}
	rows[len(states)-1] = make([]float64, hi-lo)
	return rows
}

// posSelector picks the leading dims rows of a stateDim state.
func posSelector(dims, stateDim int) *mat.Dense {
	c := mat.NewDense(dims, stateDim, nil)
	for i := 0; i < dims; i++ {
		c.Set(i, i, 1)
	}
	return c
}

// discretize turns continuous Jacobians into the one-step Euler pair
// A = I + dt*Fx, B = dt*Fu.
func discretize(fx, fu *mat.Dense, dt float64) (*mat.Dense, *mat.Dense) {
	n, _ := fx.Dims()
	_, m := fu.Dims()

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := dt * fx.At(i, j)
			if i == j {
				v++
			}
			a.Set(i, j, v)
		}
	}

	b := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			b.Set(i, j, dt*fu.At(i, j))
		}
	}
	return a, b
}

// setSkew writes sign*skew(v) into the 3x3 block of m at (r, c).
func setSkew(m *mat.Dense, r, c int, v []float64, sign float64) {
	m.Set(r, c+1, -sign*v[2])
	m.Set(r, c+2, sign*v[1])
	m.Set(r+1, c, sign*v[2])
	m.Set(r+1, c+2, -sign*v[0])
	m.Set(r+2, c, -sign*v[1])
	m.Set(r+2, c+1, sign*v[0])
}
