package models

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

// DEDIV is the 3-D multirotor with the thrust dynamic extension carried
// inside the feedback law: the plant sees a plain thrust command, while
// the law integrates the commanded thrust second derivative through two
// internal integrators. Its lifted control channels are only meaningful
// through the law, so the variant requires feedback and has no
// feed-forward inversion.
type DEDIV struct {
	opts Options

	intU    float64
	intUdot float64
}

func newDEDIV(opts Options) *DEDIV {
	m := &DEDIV{opts: opts}
	m.Reset()
	return m
}

func (m *DEDIV) Name() string                  { return "3ddediv" }
func (m *DEDIV) Dims() int                     { return 3 }
func (m *DEDIV) StateDim() int                 { return 12 }
func (m *DEDIV) ControlDim() int               { return 4 }
func (m *DEDIV) OutputDim() int                { return 3 }
func (m *DEDIV) OutputKind() dynamo.OutputKind { return dynamo.OutputPosition }
func (m *DEDIV) ControlScale() []float64       { return []float64{0.1, 0.1, 0.1, 0.1} }
func (m *DEDIV) NeedsFeedback() bool           { return true }

func (m *DEDIV) Reset() {
	m.intU = physics.Gravity
	m.intUdot = 0
}

func (m *DEDIV) InitialState() dynamo.State {
	x := make(dynamo.State, 12)
	x[8] = 1
	return x
}

func (m *DEDIV) InitialControl() dynamo.Control {
	return dynamo.Control{physics.Gravity, 0, 0, 0}
}

// Derivative sees the integrated thrust on channel 0, exactly like the
// plain 3-D plant.
func (m *DEDIV) Derivative(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
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

func (m *DEDIV) Simulate(duration float64, provider dynamo.ControlProvider, dt float64) []dynamo.State {
	return rollout(m, m.opts.Integrator, m.InitialState(), duration, provider, dt)
}

// law evaluates the control law at the given internal thrust state without
// touching the integrators.
func (m *DEDIV) law(in dynamo.FeedbackInput, intU, intUdot float64) (v1 float64, alpha []float64) {
	p := in.X[0:3]
	v := in.X[3:6]
	z := in.X[6:9]
	omega := in.X[9:12]

	accEst, jerkEst := dediEstimates(z, omega, intU, intUdot)
	sCorr := dediSnapCorrection(in, p, v, accEst, jerkEst)
	corrV1, corrAlpha := dediLaw(z, sCorr, intU)

	v1 = in.Nominal[0] + corrV1
	alpha = []float64{
		in.Nominal[1] + corrAlpha[0],
		in.Nominal[2] + corrAlpha[1],
		in.Nominal[3] + corrAlpha[2],
	}
	return v1, alpha
}

// Feedback integrates the thrust command semi-implicitly and applies the
// post-update thrust. With integrate false the integrators are left
// untouched and repeated calls return identical results.
func (m *DEDIV) Feedback(in dynamo.FeedbackInput, integrate bool) dynamo.Control {
	v1, alpha := m.law(in, m.intU, m.intUdot)

	newUdot := m.intUdot + m.opts.Dt*v1
	newU := m.intU + m.opts.Dt*newUdot
	if integrate {
		m.intUdot = newUdot
		m.intU = newU
	}
	return dynamo.Control{newU, alpha[0], alpha[1], alpha[2]}
}

// Internal exposes the law's integrator state for response probing.
func (m *DEDIV) Internal() []float64 {
	return []float64{m.intU, m.intUdot}
}

// FeedbackAug evaluates the instantaneous law output [v1 alpha] at an
// overridden internal state. It never mutates the integrators.
func (m *DEDIV) FeedbackAug(in dynamo.FeedbackInput, internal []float64) dynamo.Control {
	v1, alpha := m.law(in, internal[0], internal[1])
	return dynamo.Control{v1, alpha[0], alpha[1], alpha[2]}
}

// LearningOperator linearizes the thrust-extended model, reconstructing
// the internal thrust trajectory by integrating the supplied commanded
// thrust second derivatives from the reset state.
func (m *DEDIV) LearningOperator(dt float64, states []dynamo.State, controls []dynamo.Control, posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense {
	extended := make([]dynamo.State, len(states))
	thrust := physics.Gravity
	thrustRate := 0.0
	for k, x := range states {
		thrustRate += dt * controls[k][0]
		thrust += dt * thrustRate

		ext := make(dynamo.State, 14)
		copy(ext, x[:12])
		ext[12] = thrust
		ext[13] = thrustRate
		extended[k] = ext
	}

	jac := func(x dynamo.State, u dynamo.Control, dt float64) (*mat.Dense, *mat.Dense) {
		return dediJacobians(x, m.opts.modelDrag(), dt)
	}
	return liftOperator(dt, extended, controls, jac, posSelector(3, 14), dynamo.OutputPosition)
}

func (m *DEDIV) Positions(states []dynamo.State) [][]float64 {
	return positionRows(states, 3)
}

func (m *DEDIV) Output(states []dynamo.State, dt float64) [][]float64 {
	return positionRows(states, 3)
}
