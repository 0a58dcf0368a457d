package ilc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/physics"
)

// desired bundles the conditioned reference rows one trial tracks.
type desired struct {
	pos, vel, acc, jerk, snap [][]float64
}

// controller replays the lifted control for one trial, either directly or
// through the variant's feedback law, and records what was applied. It
// also probes the feedback response and injects the poke disturbance when
// asked to.
type controller struct {
	sys      dynamo.System
	feedback bool
	dt       float64

	nominal []dynamo.Control
	des     *desired

	// Nominal attitude and angular velocity per step, precomputed for the
	// variants whose inner loop tracks them.
	attDes    [][]float64
	angVelDes [][]float64

	probe bool

	poke         bool
	pokeStrength float64
	pokeTime     float64
	pokeDuration float64

	index     int
	applied   []dynamo.Control
	responses []*mat.Dense
	analytic  []*mat.Dense
}

// newController precomputes the per-step desired quantities each family's
// law expects: the chain variants read the nominal tilt state, the planar
// variant the nominal tilt rate, and the 3-D family the angular velocity
// implied by the reference acceleration and jerk.
func newController(sys dynamo.System, feedback bool, control, state dynamo.Lifted, des *desired, dt float64) *controller {
	c := &controller{
		sys:      sys,
		feedback: feedback,
		dt:       dt,
		des:      des,
	}

	n := control.Blocks()
	c.nominal = make([]dynamo.Control, n)
	for i := 0; i < n; i++ {
		c.nominal[i] = dynamo.Control(control.Block(i)).Clone()
	}

	switch sys.Name() {
	case "linear", "linearpos", "nl1d":
		c.attDes = make([][]float64, n)
		c.angVelDes = make([][]float64, n)
		for i := 0; i < n; i++ {
			blk := state.Block(i)
			c.attDes[i] = []float64{blk[2]}
			c.angVelDes[i] = []float64{blk[3]}
		}

	case "2dpos":
		c.angVelDes = make([][]float64, n)
		for i := 0; i < n; i++ {
			c.angVelDes[i] = []float64{state.Block(i)[5]}
		}

	case "3d", "3ddedi", "3ddediv":
		c.angVelDes = make([][]float64, n)
		for i := 0; i < n; i++ {
			z, u, ok := physics.ThrustAxis(des.acc[i])
			if !ok {
				fmt.Printf("warning: acceleration norm too low at step %d\n", i)
				c.angVelDes[i] = []float64{0, 0, 0}
				continue
			}
			zDot := physics.AxisRate(z, des.jerk[i], u)
			c.angVelDes[i] = physics.AngularVelocity(z, zDot)
		}
	}
	return c
}

func (c *controller) input(i int, x dynamo.State) dynamo.FeedbackInput {
	in := dynamo.FeedbackInput{
		X:       x,
		PosDes:  c.des.pos[i],
		VelDes:  c.des.vel[i],
		AccDes:  c.des.acc[i],
		JerkDes: c.des.jerk[i],
		SnapDes: c.des.snap[i],
		Nominal: c.nominal[i],
	}
	if c.attDes != nil {
		in.AttDes = c.attDes[i]
	}
	if c.angVelDes != nil {
		in.AngVelDes = c.angVelDes[i]
	}
	return in
}

// get is the per-step control provider handed to Simulate.
func (c *controller) get(x dynamo.State) dynamo.Control {
	i := c.index
	c.index++

	if !c.feedback {
		u := c.nominal[i].Clone()
		c.maybePoke(i, u)
		c.applied = append(c.applied, u)
		return u
	}

	in := c.input(i, x)
	if c.probe {
		c.responses = append(c.responses, c.response(in))
		if fr, ok := c.sys.(dynamo.FeedbackResponder); ok {
			c.analytic = append(c.analytic, fr.FeedbackResponse(in))
		}
	}

	u := c.sys.Feedback(in, true)
	c.maybePoke(i, u)
	c.applied = append(c.applied, u)
	return u
}

// maybePoke adds the constant disturbance inside the configured window,
// on the second control channel where there is one.
func (c *controller) maybePoke(i int, u dynamo.Control) {
	if !c.poke {
		return
	}
	center := c.pokeTime / c.dt
	steps := c.pokeDuration / c.dt
	fi := float64(i)
	if center-steps/2 < fi && fi < center+steps/2 {
		u[min(1, len(u)-1)] += c.pokeStrength
	}
}

// response probes the feedback law with central differences around the
// current state. Variants with internal law integrators expose them
// through the augmented prober, adding one column per internal state and
// reporting the instantaneous thrust channel.
func (c *controller) response(in dynamo.FeedbackInput) *mat.Dense {
	const eps = 1e-6
	nc := c.sys.ControlDim()
	ns := c.sys.StateDim()

	prober, augmented := c.sys.(dynamo.AugmentedProber)
	var internal []float64
	if augmented {
		internal = append([]float64(nil), prober.Internal()...)
	}

	eval := func(x dynamo.State, intl []float64) dynamo.Control {
		e := in
		e.X = x
		if augmented {
			return prober.FeedbackAug(e, intl)
		}
		return c.sys.Feedback(e, false)
	}

	resp := mat.NewDense(nc, ns+len(internal), nil)
	for j := 0; j < ns; j++ {
		plus := in.X.Clone()
		minus := in.X.Clone()
		plus[j] += eps
		minus[j] -= eps
		up := eval(plus, internal)
		um := eval(minus, internal)
		for r := 0; r < nc; r++ {
			resp.Set(r, j, (up[r]-um[r])/(2*eps))
		}
	}
	for j := range internal {
		plus := append([]float64(nil), internal...)
		minus := append([]float64(nil), internal...)
		plus[j] += eps
		minus[j] -= eps
		up := eval(in.X, plus)
		um := eval(in.X, minus)
		for r := 0; r < nc; r++ {
			resp.Set(r, ns+j, (up[r]-um[r])/(2*eps))
		}
	}
	return resp
}
