package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

// Pole placement for the snap-level tracking law: four error poles at -4,
// from (s+4)^4.
const (
	dediKJerk = 16.0
	dediKAcc  = 96.0
	dediKVel  = 256.0
	dediKPos  = 256.0
)

// dediSnapCorrection returns the error-driven snap correction. The nominal
// control already carries the reference snap, so only the tracking errors
// enter here.
func dediSnapCorrection(in dynamo.FeedbackInput, pos, vel, accEst, jerkEst []float64) []float64 {
	s := make([]float64, 3)
	for i := 0; i < 3; i++ {
		s[i] = dediKJerk*(in.JerkDes[i]-jerkEst[i]) +
			dediKAcc*(in.AccDes[i]-accEst[i]) +
			dediKVel*(in.VelDes[i]-vel[i]) +
			dediKPos*(in.PosDes[i]-pos[i])
	}
	return s
}

// dediLaw splits a snap correction into the thrust second derivative and
// angular acceleration channels.
func dediLaw(z, sCorr []float64, thrust float64) (v1 float64, alpha []float64) {
	if thrust < physics.MinThrust {
		thrust = physics.MinThrust
	}
	v1 = physics.Dot3(z, sCorr)
	alpha = physics.Scale3(physics.Cross3(z, sCorr), 1/thrust)
	return v1, alpha
}

// dediEstimates recovers acceleration and jerk from the thrust state.
func dediEstimates(z, omega []float64, thrust, thrustRate float64) (acc, jerk []float64) {
	acc = make([]float64, 3)
	jerk = make([]float64, 3)
	wz := physics.Cross3(omega, z)
	for i := 0; i < 3; i++ {
		acc[i] = thrust * z[i]
		jerk[i] = thrustRate*z[i] + thrust*wz[i]
	}
	acc[2] -= physics.Gravity
	return acc, jerk
}

// dediJacobians linearizes the thrust-extended 14-state nominal model
// [p v z omega F Fdot] under control [v1 alpha].
func dediJacobians(x dynamo.State, drag, dt float64) (*mat.Dense, *mat.Dense) {
	z := x[6:9]
	omega := x[9:12]
	thrust := x[12]

	fx := mat.NewDense(14, 14, nil)
	for i := 0; i < 3; i++ {
		fx.Set(i, 3+i, 1)
		fx.Set(3+i, 3+i, -drag)
		fx.Set(3+i, 6+i, thrust)
		fx.Set(3+i, 12, z[i])
	}
	setSkew(fx, 6, 6, omega, 1)
	setSkew(fx, 6, 9, z, -1)
	fx.Set(12, 13, 1)

	fu := mat.NewDense(14, 4, nil)
	fu.Set(13, 0, 1)
	for i := 0; i < 3; i++ {
		fu.Set(9+i, 1+i, 1)
	}
	return discretize(fx, fu, dt)
}

// DEDI is the 3-D multirotor with the thrust dynamic extension carried in
// the plant: thrust and its rate are states, the control commands the
// thrust second derivative.
type DEDI struct {
	opts Options
}

func newDEDI(opts Options) *DEDI {
	return &DEDI{opts: opts}
}

func (m *DEDI) Name() string                  { return "3ddedi" }
func (m *DEDI) Dims() int                     { return 3 }
func (m *DEDI) StateDim() int                 { return 14 }
func (m *DEDI) ControlDim() int               { return 4 }
func (m *DEDI) OutputDim() int                { return 3 }
func (m *DEDI) OutputKind() dynamo.OutputKind { return dynamo.OutputPosition }
func (m *DEDI) ControlScale() []float64       { return []float64{0.1, 0.1, 0.1, 0.1} }
func (m *DEDI) Reset()                        {}

func (m *DEDI) InitialState() dynamo.State {
	x := make(dynamo.State, 14)
	x[8] = 1
	x[12] = physics.Gravity
	return x
}

func (m *DEDI) InitialControl() dynamo.Control {
	return dynamo.Control{physics.Gravity, 0, 0, 0}
}

func (m *DEDI) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	z := x[6:9]
	omega := x[9:12]
	thrust := x[12]
	zDot := physics.Cross3(omega, z)

	dx := make(dynamo.State, 14)
	for i := 0; i < 3; i++ {
		dx[i] = x[3+i]
		dx[3+i] = thrust*z[i] - m.opts.DragDist*x[3+i]
		dx[6+i] = zDot[i]
		dx[9+i] = u[1+i]
	}
	dx[5] -= physics.Gravity
	dx[12] = x[13]
	dx[13] = m.opts.ThrustDist * u[0]
	return dx
}

func (m *DEDI) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

func (m *DEDI) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	p := in.X[0:3]
	v := in.X[3:6]
	z := in.X[6:9]
	omega := in.X[9:12]

	accEst, jerkEst := dediEstimates(z, omega, in.X[12], in.X[13])
	sCorr := dediSnapCorrection(in, p, v, accEst, jerkEst)
	v1, alpha := dediLaw(z, sCorr, in.X[12])

	return dynamo.Control{
		in.Nominal[0] + v1,
		in.Nominal[1] + alpha[0],
		in.Nominal[2] + alpha[1],
		in.Nominal[3] + alpha[2],
	}
}

func (m *DEDI) FeedForward(pos, vel, acc, jerk, snap []float64) (dynamo.State, dynamo.Control) {
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
	v1 := physics.ThrustSecond(z, zDot, snapEff, thrust)

	x := make(dynamo.State, 14)
	copy(x[0:3], pos)
	copy(x[3:6], vel)
	copy(x[6:9], z)
	copy(x[9:12], omega)
	x[12] = thrust
	x[13] = physics.Dot3(z, jerkEff)
	return x, dynamo.Control{v1, alpha[0], alpha[1], alpha[2]}
}

func (m *DEDI) jacobians(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
	return dediJacobians(x, m.opts.modelDrag(), dt)
}

func (m *DEDI) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	return liftOperator(dt, states, controls, m.jacobians, posSelector(3, 14), dynamo.OutputPosition)
}

func (m *DEDI) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 3)
}

func (m *DEDI) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 3)
}
