package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

const (
	chainKPos    = 10.0
	chainKVel    = 5.0
	chainKAtt    = 40.0
	chainKAttVel = 12.0
)

// Linear is the small-angle 1-D attitude chain: position, velocity, tilt
// and tilt rate, with acceleration g times the tilt and the tilt rate
// driven by the commanded angular acceleration. posOut selects position
// tracking instead of differenced acceleration.
type Linear struct {
	opts   Options
	posOut bool
}

func newLinear(opts Options, posOut bool) *Linear {
	return &Linear{opts: opts, posOut: posOut}
}

func (m *Linear) Name() string {
	if m.posOut {
		return "linearpos"
	}
	return "linear"
}

func (m *Linear) Dims() int       { return 1 }
func (m *Linear) StateDim() int   { return 4 }
func (m *Linear) ControlDim() int { return 1 }
func (m *Linear) OutputDim() int  { return 1 }

func (m *Linear) OutputKind() dynamo.OutputKind {
	if m.posOut {
		return dynamo.OutputPosition
	}
	return dynamo.OutputAcceleration
}

func (m *Linear) ControlScale() []float64        { return []float64{1} }
func (m *Linear) InitialState() dynamo.State     { return dynamo.State{0, 0, 0, 0} }
func (m *Linear) InitialControl() dynamo.Control { return dynamo.Control{0} }
func (m *Linear) Reset()                         {}

func (m *Linear) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{
		x[1],
		physics.Gravity*x[2] - m.opts.DragDist*x[1],
		x[3],
		m.opts.ThrustDist * u[0],
	}
}

func (m *Linear) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

// Feedback cascades a position loop into the attitude loop: the position
// correction tilts the commanded attitude around the nominal one.
func (m *Linear) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	accCmd := chainKPos*(in.PosDes[0]-in.X[0]) + chainKVel*(in.VelDes[0]-in.X[1])
	attCmd := in.AttDes[0] + accCmd/physics.Gravity
	return dynamo.Control{
		in.Nominal[0] +
			chainKAtt*(attCmd-in.X[2]) +
			chainKAttVel*(in.AngVelDes[0]-in.X[3]),
	}
}

func (m *Linear) FeedbackResponse(in dynamo.FeedbackInput) *mat.Dense {
	g := physics.Gravity
	return mat.NewDense(1, 4, []float64{
		-chainKAtt * chainKPos / g,
		-chainKAtt * chainKVel / g,
		-chainKAtt,
		-chainKAttVel,
	})
}

func (m *Linear) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	g := physics.Gravity
	drag := m.opts.modelDrag()

	theta := (acc[0] + drag*vel[0]) / g
	omega := (jerk[0] + drag*acc[0]) / g
	alpha := (snap[0] + drag*jerk[0]) / g
	return dynamo.State{pos[0], vel[0], theta, omega}, dynamo.Control{alpha}
}

func (m *Linear) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	fx := mat.NewDense(4, 4, nil)
	fx.Set(0, 1, 1)
	fx.Set(1, 1, -m.opts.modelDrag())
	fx.Set(1, 2, physics.Gravity)
	fx.Set(2, 3, 1)

	fu := mat.NewDense(4, 1, nil)
	fu.Set(3, 0, 1)
	return discretize(fx, fu, dt)
}

func (m *Linear) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	if m.posOut {
		return liftOperator(dt, states, controls, m.jacobians, posSelector(1, 4), dynamo.OutputPosition)
	}
	c := mat.NewDense(1, 4, []float64{0, 1, 0, 0})
	return liftOperator(dt, states, controls, m.jacobians, c, dynamo.OutputAcceleration)
}

func (m *Linear) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 1)
}

func (m *Linear) Output(states []dynamo.State, dt float64) [][]float64 {
	if m.posOut {
		return positionRows(states, 1)
	}
	return diffRows(states, 1, 2, dt)
}
