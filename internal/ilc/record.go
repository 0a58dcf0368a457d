package ilc

import "gonum.org/v1/gonum/mat"

// TrialRecord captures everything measured during one trial.
type TrialRecord struct {
	Trial int

	// Positions has one row per sample. ZAxis and AngVel are filled for
	// the three-dimensional variants only.
	Positions [][]float64
	ZAxis     [][]float64
	AngVel    [][]float64

	// Controls holds the control applied at each step, after feedback and
	// poke. Correction is the lifted learned control this trial ran with.
	Controls   [][]float64
	Correction []float64

	// Position error statistics against the conditioned reference, taken
	// before measurement noise.
	MeanAbsError float64
	MaxAbsError  float64
	Effort       float64

	// Responses holds the probed feedback Jacobian per step, one
	// nControl x nState(+internal) matrix per step; Analytic holds the
	// model-supplied Jacobian when the variant provides one. Both are
	// filled on the final trial only.
	Responses []*mat.Dense
	Analytic  []*mat.Dense
}

// Report is the outcome of a full run.
type Report struct {
	System string
	Steps  int
	Dt     float64

	Times   []float64
	Desired [][]float64

	Records []TrialRecord
}

// Final returns the last trial record, or nil before any trial completed.
func (r *Report) Final() *TrialRecord {
	if len(r.Records) == 0 {
		return nil
	}
	return &r.Records[len(r.Records)-1]
}

// MeanErrors returns the per-trial mean absolute position error, in trial
// order.
func (r *Report) MeanErrors() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.MeanAbsError
	}
	return out
}
