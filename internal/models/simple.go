package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
)

const (
	simpleKPos = 10.0
	simpleKVel = 5.0
)

// Simple is the 1-D double integrator driven by a commanded acceleration.
// The update tracks the finite-difference acceleration of the measured
// velocity.
type Simple struct {
	opts Options
}

func newSimple(opts Options) *Simple {
	return &Simple{opts: opts}
}

func (m *Simple) Name() string                   { return "simple" }
func (m *Simple) Dims() int                      { return 1 }
func (m *Simple) StateDim() int                  { return 2 }
func (m *Simple) ControlDim() int                { return 1 }
func (m *Simple) OutputDim() int                 { return 1 }
func (m *Simple) OutputKind() dynamo.OutputKind  { return dynamo.OutputAcceleration }
func (m *Simple) ControlScale() []float64        { return []float64{1} }
func (m *Simple) InitialState() dynamo.State     { return dynamo.State{0, 0} }
func (m *Simple) InitialControl() dynamo.Control { return dynamo.Control{0} }
func (m *Simple) Reset()                         {}

func (m *Simple) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{
		x[1],
		m.opts.ThrustDist*u[0] - m.opts.DragDist*x[1],
	}
}

func (m *Simple) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

func (m *Simple) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	return dynamo.Control{
		in.Nominal[0] +
			simpleKPos*(in.PosDes[0]-in.X[0]) +
			simpleKVel*(in.VelDes[0]-in.X[1]),
	}
}

func (m *Simple) FeedbackResponse(in dynamo.FeedbackInput) *mat.Dense {
	return mat.NewDense(1, 2, []float64{-simpleKPos, -simpleKVel})
}

func (m *Simple) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	drag := m.opts.modelDrag()
	return dynamo.State{pos[0], vel[0]}, dynamo.Control{acc[0] + drag*vel[0]}
}

func (m *Simple) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	fx := mat.NewDense(2, 2, nil)
	fx.Set(0, 1, 1)
	fx.Set(1, 1, -m.opts.modelDrag())

	fu := mat.NewDense(2, 1, nil)
	fu.Set(1, 0, 1)
	return discretize(fx, fu, dt)
}

func (m *Simple) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	c := mat.NewDense(1, 2, []float64{0, 1})
	return liftOperator(dt, states, controls, m.jacobians, c, dynamo.OutputAcceleration)
}

func (m *Simple) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 1)
}

func (m *Simple) Output(states []dynamo.State, dt float64) [][]float64 {
	return diffRows(states, 1, 2, dt)
}
