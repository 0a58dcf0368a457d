package integrators

import (
	"github.com/san-kum/ilc/internal/dynamo"
)

// RK4 implements the classical fourth-order Runge-Kutta method with a
// zero-order hold on the control over the step.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.Dynamics, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	k1 := dyn.Derivative(x, u, t)
	k2 := dyn.Derivative(addScaled(x, k1, dt/2), u, t+dt/2)
	k3 := dyn.Derivative(addScaled(x, k2, dt/2), u, t+dt/2)
	k4 := dyn.Derivative(addScaled(x, k3, dt), u, t+dt)

	next := x.Clone()
	for i := range next {
		next[i] += dt / 6 * (k1[i] + 2*k2[i] + 2*k3[i] + k4[i])
	}
	return next
}

func (r *RK4) Name() string {
	return "rk4"
}

func addScaled(x, dx dynamo.State, h float64) dynamo.State {
	y := x.Clone()
	for i := range y {
		y[i] += h * dx[i]
	}
	return y
}
