package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
)

// Trivial is the scalar single integrator: position driven directly by a
// commanded velocity. The smallest plant the trial loop closes over.
type Trivial struct {
	opts Options
}

func newTrivial(opts Options) *Trivial {
	return &Trivial{opts: opts}
}

func (m *Trivial) Name() string                    { return "trivial" }
func (m *Trivial) Dims() int                       { return 1 }
func (m *Trivial) StateDim() int                   { return 1 }
func (m *Trivial) ControlDim() int                 { return 1 }
func (m *Trivial) OutputDim() int                  { return 1 }
func (m *Trivial) OutputKind() dynamo.OutputKind   { return dynamo.OutputPosition }
func (m *Trivial) ControlScale() []float64         { return []float64{1} }
func (m *Trivial) InitialState() dynamo.State      { return dynamo.State{0} }
func (m *Trivial) InitialControl() dynamo.Control  { return dynamo.Control{0} }
func (m *Trivial) Reset()                          {}

func (m *Trivial) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{m.opts.ThrustDist * u[0]}
}

func (m *Trivial) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

// Feedback feeds the desired velocity forward on top of the learned
// command; there is no state to correct against.
func (m *Trivial) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	return dynamo.Control{in.Nominal[0] + in.VelDes[0]}
}

func (m *Trivial) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	return dynamo.State{pos[0]}, dynamo.Control{vel[0]}
}

func (m *Trivial) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	fx := mat.NewDense(1, 1, nil)
	fu := mat.NewDense(1, 1, []float64{1})
	return discretize(fx, fu, dt)
}

func (m *Trivial) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	return liftOperator(dt, states, controls, m.jacobians, posSelector(1, 1), dynamo.OutputPosition)
}

func (m *Trivial) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 1)
}

func (m *Trivial) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 1)
}
