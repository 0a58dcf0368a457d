package ilc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/ilc/internal/dynamo"
	"github.com/san-kum/ilc/internal/integrators"
	"github.com/san-kum/ilc/internal/metrics"
	"github.com/san-kum/ilc/internal/models"
	"github.com/san-kum/ilc/internal/traj"
)

// ErrRelinConfig indicates a relinearization flag combination the update
// cannot honor.
var ErrRelinConfig = errors.New("ilc: unsupported relinearization configuration")

// noiseStd is the standard deviation of the synthetic measurement noise
// added to the position errors.
const noiseStd = 0.001

// Params configures one learning run.
type Params struct {
	System   string
	Trials   int
	Dt       float64
	Duration float64
	Dist     float64

	// Alpha scales each control update; Weight damps its norm.
	Alpha  float64
	Weight float64

	Feedback    bool
	FeedForward bool
	RelinTime   bool
	RelinIter   bool
	Noise       bool
	Filter      bool

	ThrustDist float64
	DragDist   float64
	ModelDrag  bool

	Poke         bool
	PokeStrength float64
	PokeTime     float64
	PokeDuration float64

	// Probe requests the feedback response along the final trial. It only
	// takes effect when the feedback law is active.
	Probe bool

	Integrator string
	Seed       int64
}

// Run executes the trial loop: simulate, measure, linearize, solve, update,
// with no update after the final trial. onTrial, when non-nil, is called
// synchronously after each trial completes.
func Run(ctx context.Context, p Params, onTrial func(TrialRecord)) (*Report, error) {
	if p.Trials < 1 {
		return nil, fmt.Errorf("ilc: trials must be positive, got %d", p.Trials)
	}
	if p.Integrator == "" {
		p.Integrator = "euler"
	}
	integ, err := integrators.New(p.Integrator)
	if err != nil {
		return nil, err
	}

	sys, err := models.New(p.System, models.Options{
		Dt:         p.Dt,
		ThrustDist: p.ThrustDist,
		DragDist:   p.DragDist,
		ModelDrag:  p.ModelDrag,
		Integrator: integ,
	})
	if err != nil {
		return nil, err
	}

	if p.RelinIter && !p.RelinTime {
		return nil, fmt.Errorf("%w: per-trial relinearization needs per-step points", ErrRelinConfig)
	}
	if !p.RelinIter && !p.FeedForward {
		return nil, fmt.Errorf("%w: frozen linearization needs a feed-forward seed", ErrRelinConfig)
	}
	if fd, ok := sys.(dynamo.FeedbackDependent); ok && fd.NeedsFeedback() && !p.Feedback {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrNeedsFeedback, p.System)
	}

	ref, err := traj.Generate(p.Dist, p.Duration, p.Dt, sys.Dims())
	if err != nil {
		return nil, err
	}
	n := ref.Steps() - 1
	if n < 1 {
		return nil, fmt.Errorf("ilc: horizon of %d steps is too short", n)
	}

	nc := sys.ControlDim()
	liftedControl := dynamo.NewLifted(n, nc)
	liftedState := dynamo.NewLifted(n, sys.StateDim())
	for i := 0; i < n; i++ {
		liftedControl.SetBlock(i, sys.InitialControl())
		liftedState.SetBlock(i, sys.InitialState())
	}

	// Feed-forward seeding reads the reference before conditioning.
	if p.FeedForward {
		ffw, ok := sys.(dynamo.FeedForwarder)
		if !ok {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrNoFeedForward, p.System)
		}
		for i := 0; i < n; i++ {
			x, u := ffw.FeedForward(ref.Pos[i], ref.Vel[i], ref.Acc[i], ref.Jerk[i], ref.Snap[i])
			liftedState.SetBlock(i, x)
			liftedControl.SetBlock(i, u)
		}
	}
	initialState := liftedState.Clone()
	initialControl := liftedControl.Clone()

	des := &desired{
		pos:  cloneRows(ref.Pos),
		vel:  ref.Vel,
		acc:  cloneRows(ref.Acc),
		jerk: ref.Jerk,
		snap: ref.Snap,
	}
	models.Condition(p.System, des.pos, des.acc)

	rng := rand.New(rand.NewSource(p.Seed))
	tiledScale := tile(sys.ControlScale(), n)

	report := &Report{
		System:  p.System,
		Steps:   n,
		Dt:      p.Dt,
		Times:   ref.Times,
		Desired: des.pos,
		Records: make([]TrialRecord, 0, p.Trials),
	}

	for trial := 0; trial < p.Trials; trial++ {
		ctrl := newController(sys, p.Feedback, liftedControl, liftedState, des, p.Dt)
		ctrl.probe = trial == p.Trials-1 && p.Feedback && p.Probe
		ctrl.poke = trial == p.Trials-1 && p.Poke
		ctrl.pokeStrength = p.PokeStrength
		ctrl.pokeTime = p.PokeTime
		ctrl.pokeDuration = p.PokeDuration

		sys.Reset()
		data := sys.Simulate(p.Duration, ctrl.get, p.Dt)
		for _, x := range data {
			if !x.IsValid() {
				return nil, &dynamo.RunError{Trial: trial, Phase: "simulate", Wrapped: dynamo.ErrUnstable}
			}
		}

		positions := sys.Positions(data)
		track := metrics.NewTrackingError(des.pos)
		for i, row := range positions {
			track.Observe(dynamo.State(row), nil, float64(i)*p.Dt)
		}
		effort := metrics.NewControlEffort(sys.ControlScale())
		for i, u := range ctrl.applied {
			effort.Observe(nil, u, float64(i)*p.Dt)
		}

		rec := TrialRecord{
			Trial:        trial,
			Positions:    positions,
			Controls:     controlRows(ctrl.applied),
			Correction:   append([]float64(nil), liftedControl.Data()...),
			MeanAbsError: track.Value(),
			MaxAbsError:  track.Max(),
			Effort:       effort.Value(),
			Responses:    ctrl.responses,
			Analytic:     ctrl.analytic,
		}
		if sys.Dims() == 3 {
			rec.ZAxis = stateCols(data, 6, 9)
			rec.AngVel = stateCols(data, 9, 12)
		}
		report.Records = append(report.Records, rec)
		if onTrial != nil {
			onTrial(rec)
		}

		if trial == p.Trials-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &dynamo.RunError{Trial: trial, Phase: "update", Wrapped: dynamo.ErrCanceled}
		default:
		}

		posErr := make([][]float64, len(positions))
		for i, row := range positions {
			e := make([]float64, len(row))
			for j := range row {
				e[j] = row[j] - des.pos[i][j]
			}
			posErr[i] = e
		}
		if p.Noise {
			for i := range posErr {
				draw := rng.NormFloat64() * noiseStd
				for j := range posErr[i] {
					posErr[i][j] += draw
				}
			}
		}

		var errRows [][]float64
		if sys.OutputKind() == dynamo.OutputPosition {
			if p.Filter {
				if err := filterColumns(posErr); err != nil {
					return nil, &dynamo.RunError{Trial: trial, Phase: "filter", Wrapped: err}
				}
			}
			errRows = posErr
		} else {
			output := sys.Output(data, p.Dt)
			errRows = make([][]float64, len(output))
			for i, row := range output {
				e := make([]float64, len(row))
				for j := range row {
					e[j] = row[j] - des.acc[i][j]
				}
				errRows[i] = e
			}
		}

		// Lifted error block i is the output error at sample i+1.
		outDim := sys.OutputDim()
		liftedErr := make([]float64, n*outDim)
		for i := 0; i < n; i++ {
			copy(liftedErr[i*outDim:(i+1)*outDim], errRows[i+1])
		}

		points, pointControls := relinPoints(p.RelinTime, p.RelinIter, n, data, liftedControl, initialState, initialControl)
		op := sys.LearningOperator(p.Dt, points, pointControls, des.pos, des.vel, des.acc, des.jerk, des.snap)

		update, err := solveUpdate(op, liftedErr, tiledScale, p.Weight, p.Alpha)
		if err != nil {
			return nil, &dynamo.RunError{Trial: trial, Phase: "solve", Wrapped: err}
		}
		liftedControl, err = liftedControl.AddScaled(update, 1)
		if err != nil {
			return nil, &dynamo.RunError{Trial: trial, Phase: "update", Wrapped: err}
		}
	}
	return report, nil
}

// relinPoints selects one linearization pair per step plus a repeated
// final pair: the measured trajectory and current lifted control under
// per-trial relinearization, the seeded lifted blocks otherwise. Without
// per-step relinearization every pair is the first one.
func relinPoints(relinTime, relinIter bool, n int, data []dynamo.State, control, initState, initControl dynamo.Lifted) ([]dynamo.State, []dynamo.Control) {
	states := make([]dynamo.State, 0, n+1)
	controls := make([]dynamo.Control, 0, n+1)

	add := func(i int) {
		ind := 0
		if relinTime {
			ind = i
		}
		if relinIter {
			states = append(states, data[ind].Clone())
			controls = append(controls, dynamo.Control(control.Block(ind)).Clone())
		} else {
			states = append(states, dynamo.State(initState.Block(ind)).Clone())
			controls = append(controls, dynamo.Control(initControl.Block(ind)).Clone())
		}
	}

	for i := 0; i < n; i++ {
		add(i)
	}
	add(n - 1)
	return states, controls
}

// filterColumns smooths each spatial column of the error rows in place.
func filterColumns(rows [][]float64) error {
	if len(rows) == 0 {
		return nil
	}
	dims := len(rows[0])
	col := make([]float64, len(rows))
	for j := 0; j < dims; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		smoothed, err := savgol(col)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i][j] = smoothed[i]
		}
	}
	return nil
}

func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func controlRows(controls []dynamo.Control) [][]float64 {
	out := make([][]float64, len(controls))
	for i, u := range controls {
		out[i] = append([]float64(nil), u...)
	}
	return out
}

func stateCols(states []dynamo.State, lo, hi int) [][]float64 {
	out := make([][]float64, len(states))
	for i, x := range states {
		out[i] = append([]float64(nil), x[lo:hi]...)
	}
	return out
}

func tile(scale []float64, n int) []float64 {
	out := make([]float64, 0, n*len(scale))
	for i := 0; i < n; i++ {
		out = append(out, scale...)
	}
	return out
}
