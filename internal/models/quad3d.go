package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

const (
	quadKAtt    = 120.0
	quadKAttVel = 16.0
)

// Quad3D is the 3-D multirotor with attitude carried as the body thrust
// axis: state [p v z omega], control [thrust, angular acceleration].
type Quad3D struct {
	opts Options

	// lastZDes holds the most recent well-conditioned thrust direction for
	// the degenerate-acceleration fallback.
	lastZDes []float64
}

func newQuad3D(opts Options) *Quad3D {
	m := &Quad3D{opts: opts}
	m.Reset()
	return m
}

func (m *Quad3D) Name() string                  { return "3d" }
func (m *Quad3D) Dims() int                     { return 3 }
func (m *Quad3D) StateDim() int                 { return 12 }
func (m *Quad3D) ControlDim() int               { return 4 }
func (m *Quad3D) OutputDim() int                { return 3 }
func (m *Quad3D) OutputKind() dynamo.OutputKind { return dynamo.OutputPosition }
func (m *Quad3D) ControlScale() []float64       { return []float64{1, 0.1, 0.1, 0.1} }

func (m *Quad3D) InitialState() dynamo.State {
	x := make(dynamo.State, 12)
	x[8] = 1
	return x
}

func (m *Quad3D) InitialControl() dynamo.Control {
	return dynamo.Control{physics.Gravity, 0, 0, 0}
}

func (m *Quad3D) Reset() {
	m.lastZDes = []float64{0, 0, 1}
}

func (m *Quad3D) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	thrust := m.opts.ThrustDist * u[0]
	z := x[6:9]
	omega := x[9:12]
	zDot := physics.Cross3(omega, z)

	dx := make(dynamo.State, 12)
	for i := 0; i < 3; i++ {
		dx[i] = x[3+i]
		dx[3+i] = thrust*z[i] - m.opts.DragDist*x[3+i]
		dx[6+i] = zDot[i]
		dx[9+i] = u[1+i]
	}
	dx[5] -= physics.Gravity
	return dx
}

func (m *Quad3D) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

// Feedback corrects thrust along the current axis and steers the axis
// toward the direction demanded by the corrected acceleration. A
// degenerate demand keeps the last valid direction.
func (m *Quad3D) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	p := in.X[0:3]
	v := in.X[3:6]
	z := in.X[6:9]
	omega := in.X[9:12]

	accFb := make([]float64, 3)
	accTot := make([]float64, 3)
	for i := 0; i < 3; i++ {
		accFb[i] = chainKPos*(in.PosDes[i]-p[i]) + chainKVel*(in.VelDes[i]-v[i])
		accTot[i] = in.AccDes[i] + accFb[i]
	}

	zDes, _, ok := physics.ThrustAxis(accTot)
	if !ok {
		zDes = m.lastZDes
	} else if integrate {
		m.lastZDes = zDes
	}

	thrust := in.Nominal[0] + physics.Dot3(z, accFb)

	attErr := physics.Cross3(z, zDes)
	u := dynamo.Control{thrust, 0, 0, 0}
	for i := 0; i < 3; i++ {
		u[1+i] = in.Nominal[1+i] +
			quadKAtt*attErr[i] +
			quadKAttVel*(in.AngVelDes[i]-omega[i])
	}
	return u
}

func (m *Quad3D) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
	drag := m.opts.modelDrag()

	accEff := make([]float64, 3)
	jerkEff := make([]float64, 3)
	snapEff := make([]float64, 3)
	for i := 0; i < 3; i++ {
		accEff[i] = acc[i] + drag*vel[i]
		jerkEff[i] = jerk[i] + drag*acc[i]
		snapEff[i] = snap[i] + drag*jerk[i]
	}

	z, thrust, _ := physics.ThrustAxis(accEff)
	zDot := physics.AxisRate(z, jerkEff, thrust)
	omega := physics.AngularVelocity(z, zDot)
	alpha := physics.AngularAccelFF(z, omega, jerkEff, snapEff, thrust)

	x := make(dynamo.State, 12)
	copy(x[0:3], pos)
	copy(x[3:6], vel)
	copy(x[6:9], z)
	copy(x[9:12], omega)
	return x, dynamo.Control{thrust, alpha[0], alpha[1], alpha[2]}
}

func (m *Quad3D) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	drag := m.opts.modelDrag()
	z := x[6:9]
	omega := x[9:12]
	thrust := u[0]

	fx := mat.NewDense(12, 12, nil)
	for i := 0; i < 3; i++ {
		fx.Set(i, 3+i, 1)
		fx.Set(3+i, 3+i, -drag)
		fx.Set(3+i, 6+i, thrust)
	}
	setSkew(fx, 6, 6, omega, 1)
	setSkew(fx, 6, 9, z, -1)

	fu := mat.NewDense(12, 4, nil)
	for i := 0; i < 3; i++ {
		fu.Set(3+i, 0, z[i])
		fu.Set(9+i, 1+i, 1)
	}
	return discretize(fx, fu, dt)
}

func (m *Quad3D) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	return liftOperator(dt, states, controls, m.jacobians, posSelector(3, 12), dynamo.OutputPosition)
}

func (m *Quad3D) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 3)
}

func (m *Quad3D) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 3)
}
