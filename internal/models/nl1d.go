package models

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

// NL1D is the 1-D attitude chain with the exact tangent thrust coupling,
// so the small-angle assumption of Linear no longer holds away from hover.
type NL1D struct {
	opts Options
}

func newNL1D(opts Options) *NL1D {
	return &NL1D{opts: opts}
}

func (m *NL1D) Name() string                   { return "nl1d" }
func (m *NL1D) Dims() int                      { return 1 }
func (m *NL1D) StateDim() int                  { return 4 }
func (m *NL1D) ControlDim() int                { return 1 }
func (m *NL1D) OutputDim() int                 { return 1 }
func (m *NL1D) OutputKind() dynamo.OutputKind  { return dynamo.OutputPosition }
func (m *NL1D) ControlScale() []float64        { return []float64{1} }
func (m *NL1D) InitialState() dynamo.State     { return dynamo.State{0, 0, 0, 0} }
func (m *NL1D) InitialControl() dynamo.Control { return dynamo.Control{0} }
func (m *NL1D) Reset()                         {}

func (m *NL1D) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{
		x[1],
		physics.Gravity*math.Tan(x[2]) - m.opts.DragDist*x[1],
		x[3],
		m.opts.ThrustDist * u[0],
	}
}

func (m *NL1D) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

func (m *NL1D) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	accCmd := chainKPos*(in.PosDes[0]-in.X[0]) + chainKVel*(in.VelDes[0]-in.X[1])
	attCmd := in.AttDes[0] + accCmd/physics.Gravity
	return dynamo.Control{
		in.Nominal[0] +
			chainKAtt*(attCmd-in.X[2]) +
			chainKAttVel*(in.AngVelDes[0]-in.X[3]),
	}
}

func (m *NL1D) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	g := physics.Gravity
	drag := m.opts.modelDrag()

	accEff := acc[0] + drag*vel[0]
	jerkEff := jerk[0] + drag*acc[0]
	snapEff := snap[0] + drag*jerk[0]

	theta := math.Atan2(accEff, g)
	cos := math.Cos(theta)
	omega := jerkEff * cos * cos / g
	alpha := snapEff*cos*cos/g - 2*math.Tan(theta)*omega*omega
	return dynamo.State{pos[0], vel[0], theta, omega}, dynamo.Control{alpha}
}

func (m *NL1D) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	tan := math.Tan(x[2])

	fx := mat.NewDense(4, 4, nil)
	fx.Set(0, 1, 1)
	fx.Set(1, 1, -m.opts.modelDrag())
	fx.Set(1, 2, physics.Gravity*(1+tan*tan))
	fx.Set(2, 3, 1)

	fu := mat.NewDense(4, 1, nil)
	fu.Set(3, 0, 1)
	return discretize(fx, fu, dt)
}

func (m *NL1D) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	return liftOperator(dt, states, controls, m.jacobians, posSelector(1, 4), dynamo.OutputPosition)
}

func (m *NL1D) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 1)
}

func (m *NL1D) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 1)
}
