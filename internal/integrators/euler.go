package integrators

import (
	"github.com/san-kum/ilc/internal/dynamo"
)

// Euler is the explicit forward Euler method. The learning operator's
// A and B blocks assume this discretization.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.Dynamics, x dynamo.State, u dynamo.Control, t, dt float64) dynamo.State {
	dx := dyn.Derivative(x, u, t)

	next := x.Clone()
	for i := range next {
		next[i] += dt * dx[i]
	}
	return next
}

func (e *Euler) Name() string {
	return "euler"
}
