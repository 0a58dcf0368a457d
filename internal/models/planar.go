package models

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

// Planar is the 2-D multirotor in the vertical plane: thrust along the
// body axis set by the tilt angle, angular acceleration as the second
// control channel.
type Planar struct {
	opts Options
}

func newPlanar(opts Options) *Planar {
	return &Planar{opts: opts}
}

func (m *Planar) Name() string                  { return "2dpos" }
func (m *Planar) Dims() int                     { return 2 }
func (m *Planar) StateDim() int                 { return 6 }
func (m *Planar) ControlDim() int               { return 2 }
func (m *Planar) OutputDim() int                { return 2 }
func (m *Planar) OutputKind() dynamo.OutputKind { return dynamo.OutputPosition }
func (m *Planar) ControlScale() []float64       { return []float64{1, 0.1} }
func (m *Planar) InitialState() dynamo.State    { return make(dynamo.State, 6) }
func (m *Planar) Reset()                        {}

func (m *Planar) InitialControl() dynamo.Control {
	return dynamo.Control{physics.Gravity, 0}
}

func (m *Planar) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	thrust := m.opts.ThrustDist * u[0]
	sin, cos := math.Sincos(x[4])
	return dynamo.State{
		x[2],
		x[3],
		-thrust*sin - m.opts.DragDist*x[2],
		thrust*cos - physics.Gravity - m.opts.DragDist*x[3],
		x[5],
		u[1],
	}
}

func (m *Planar) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

// Feedback corrects thrust along the current body axis and cascades the
// position correction into the tilt command.
func (m *Planar) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	accFb := make([]float64, 2)
	accTot := make([]float64, 2)
	for i := 0; i < 2; i++ {
		accFb[i] = chainKPos*(in.PosDes[i]-in.X[i]) + chainKVel*(in.VelDes[i]-in.X[2+i])
		accTot[i] = in.AccDes[i] + accFb[i]
	}

	sin, cos := math.Sincos(in.X[4])
	thrust := in.Nominal[0] + (-sin*accFb[0] + cos*accFb[1])

	attCmd := physics.TiltAngle(accTot)
	angAcc := in.Nominal[1] +
		chainKAtt*(attCmd-in.X[4]) +
		chainKAttVel*(in.AngVelDes[0]-in.X[5])

	return dynamo.Control{thrust, angAcc}
}

func (m *Planar) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	drag := m.opts.modelDrag()

	accEff := []float64{acc[0] + drag*vel[0], acc[1] + drag*vel[1]}
	jerkEff := []float64{jerk[0] + drag*acc[0], jerk[1] + drag*acc[1]}
	snapEff := []float64{snap[0] + drag*jerk[0], snap[1] + drag*jerk[1]}

	qx := accEff[0]
	qz := accEff[1] + physics.Gravity
	thrust := math.Hypot(qx, qz)

	theta := physics.TiltAngle(accEff)
	omega := physics.TiltRate(accEff, jerkEff)
	alpha := physics.TiltAccel(accEff, jerkEff, snapEff)

	state := dynamo.State{pos[0], pos[1], vel[0], vel[1], theta, omega}
	return state, dynamo.Control{thrust, alpha}
}

func (m *Planar) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	drag := m.opts.modelDrag()
	sin, cos := math.Sincos(x[4])
	thrust := u[0]

	fx := mat.NewDense(6, 6, nil)
	fx.Set(0, 2, 1)
	fx.Set(1, 3, 1)
	fx.Set(2, 2, -drag)
	fx.Set(2, 4, -thrust*cos)
	fx.Set(3, 3, -drag)
	fx.Set(3, 4, -thrust*sin)
	fx.Set(4, 5, 1)

	fu := mat.NewDense(6, 2, nil)
	fu.Set(2, 0, -sin)
	fu.Set(3, 0, cos)
	fu.Set(5, 1, 1)
	return discretize(fx, fu, dt)
}

func (m *Planar) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	return liftOperator(dt, states, controls, m.jacobians, posSelector(2, 6), dynamo.OutputPosition)
}

func (m *Planar) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 2)
}

func (m *Planar) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 2)
}
