package dynamo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type Control []float64

func (c Control) Clone() Control {
	r := make(Control, len(c))
	copy(r, c)
	return r
}

// ControlProvider returns the control command to apply at the current true
// state. The trial controller supplies one per trial; it tracks the step
// index internally.
type ControlProvider func(x State) Control

type Dynamics interface {
	Derivative(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

type Integrator interface {
	Step(dyn Dynamics, x State, u Control, t, dt float64) State
}

// OutputKind identifies the error channel a variant feeds back into the
// learning update.
type OutputKind int

const (
	OutputPosition OutputKind = iota
	OutputAcceleration
)

// FeedbackInput carries the current true state and the desired trajectory
// derivatives for one step. Variants read the fields their control law
// needs; unused fields may be nil.
type FeedbackInput struct {
	X State

	PosDes  []float64
	VelDes  []float64
	AccDes  []float64
	JerkDes []float64
	SnapDes []float64

	// AttDes and AngVelDes hold the nominal attitude and angular velocity
	// for variants whose inner loop tracks them (tilt angle for the 1-D
	// chain family, body rates for the multirotors).
	AttDes    []float64
	AngVelDes []float64

	// Nominal is the lifted feed-forward control block for this step.
	Nominal Control
}

// System is the capability set every model variant implements.
type System interface {
	Dynamics

	Name() string
	Dims() int
	OutputDim() int
	OutputKind() OutputKind

	// ControlScale is the per-channel normalization used by the update
	// penalty; channels with larger natural magnitudes get smaller weights.
	ControlScale() []float64

	InitialState() State
	InitialControl() Control

	// Reset clears all internal mutable state before a trial.
	Reset()

	// Simulate advances the true disturbed dynamics for round(duration/dt)
	// steps from the fixed initial condition and returns all N+1 states.
	Simulate(duration float64, provider ControlProvider, dt float64) []State

	// Feedback computes the control command for one step. When integrate
	// is false the call is pure: internal integrator state is not advanced,
	// so the law can be probed repeatedly at the same point.
	Feedback(in FeedbackInput, integrate bool) Control

	// LearningOperator builds the lifted sensitivity matrix from one
	// linearization point per step (N+1 points, last repeated).
	LearningOperator(dt float64, states []State, controls []Control,
		posDes, velDes, accDes, jerkDes, snapDes [][]float64) *mat.Dense

	// Positions extracts the position rows from a simulated trajectory.
	Positions(states []State) [][]float64

	// Output extracts the realized output channel, one row per sample.
	Output(states []State, dt float64) [][]float64
}

// FeedForwarder is implemented by variants whose nominal model inverts
// cleanly: given one sample's desired derivatives it returns the state and
// control that track it exactly under the undisturbed dynamics.
type FeedForwarder interface {
	FeedForward(pos, vel, acc, jerk, snap []float64) (State, Control)
}

// FeedbackResponder supplies the analytic Jacobian of the feedback law with
// respect to the state, for validation against the empirical probe.
type FeedbackResponder interface {
	FeedbackResponse(in FeedbackInput) *mat.Dense
}

// AugmentedProber is implemented by variants whose feedback law carries
// internal integrator state that the response probe must also differentiate.
// FeedbackAug evaluates the law with the internal state overridden and never
// mutates it.
type AugmentedProber interface {
	Internal() []float64
	FeedbackAug(in FeedbackInput, internal []float64) Control
}

// FeedbackDependent marks variants whose lifted control channels are only
// meaningful through the feedback law; replaying them open-loop is a
// precondition violation.
type FeedbackDependent interface {
	NeedsFeedback() bool
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}
