package metrics

import (
	"math"

	"github.com/san-kum/ilc/internal/dynamo"
)

// TrackingError accumulates the absolute position error against a desired
// trajectory, one sample per Observe call.
type TrackingError struct {
	name    string
	desired [][]float64
	index   int
	sum     float64
	worst   float64
	entries int
}

func NewTrackingError(desired [][]float64) *TrackingError {
	return &TrackingError{
		name:    "tracking_error",
		desired: desired,
	}
}

func (e *TrackingError) Name() string { return e.name }

// Observe consumes the next desired sample and accumulates the error of
// the leading state entries against it.
func (e *TrackingError) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if e.index >= len(e.desired) {
		return
	}
	des := e.desired[e.index]
	e.index++
	for i, d := range des {
		if i >= len(x) {
			break
		}
		a := math.Abs(x[i] - d)
		e.sum += a
		if a > e.worst {
			e.worst = a
		}
		e.entries++
	}
}

// Value returns the mean absolute error over all observed entries.
func (e *TrackingError) Value() float64 {
	if e.entries == 0 {
		return 0
	}
	return e.sum / float64(e.entries)
}

// Max returns the largest absolute error seen.
func (e *TrackingError) Max() float64 {
	return e.worst
}

func (e *TrackingError) Reset() {
	e.index = 0
	e.sum = 0
	e.worst = 0
	e.entries = 0
}
