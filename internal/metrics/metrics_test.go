package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ilc/internal/dynamo"
)

func TestMeanMaxAbs(t *testing.T) {
	rows := [][]float64{
		{1, -2},
		{0, 3},
		{-4, 0},
	}

	if got := MeanAbs(rows); math.Abs(got-10.0/6.0) > 1e-12 {
		t.Errorf("MeanAbs() = %v, want %v", got, 10.0/6.0)
	}
	if got := MaxAbs(rows); got != 4 {
		t.Errorf("MaxAbs() = %v, want 4", got)
	}
	if got := RMS(rows); math.Abs(got-math.Sqrt(30.0/6.0)) > 1e-12 {
		t.Errorf("RMS() = %v, want %v", got, math.Sqrt(30.0/6.0))
	}
}

func TestStatsEmpty(t *testing.T) {
	if got := MeanAbs(nil); got != 0 {
		t.Errorf("MeanAbs(nil) = %v, want 0", got)
	}
	if got := MaxAbs([][]float64{}); got != 0 {
		t.Errorf("MaxAbs(empty) = %v, want 0", got)
	}
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v, want 0", got)
	}
}

func TestTrackingError(t *testing.T) {
	desired := [][]float64{
		{0, 0},
		{1, 1},
	}
	m := NewTrackingError(desired)

	m.Observe(dynamo.State{0.5, 0, 99}, nil, 0)
	m.Observe(dynamo.State{1, 0.5, 99}, nil, 0.02)

	if got := m.Value(); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("Value() = %v, want 0.25", got)
	}
	if got := m.Max(); got != 0.5 {
		t.Errorf("Max() = %v, want 0.5", got)
	}

	// Extra samples beyond the desired horizon are ignored.
	m.Observe(dynamo.State{100, 100}, nil, 0.04)
	if got := m.Max(); got != 0.5 {
		t.Errorf("Max() after horizon = %v, want 0.5", got)
	}

	m.Reset()
	if m.Value() != 0 || m.Max() != 0 {
		t.Error("expected zero statistics after reset")
	}
	m.Observe(dynamo.State{2, 0}, nil, 0)
	if got := m.Max(); got != 2 {
		t.Errorf("Max() after reset+observe = %v, want 2", got)
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort([]float64{1, 0.1})

	m.Observe(nil, dynamo.Control{2, -10}, 0)
	m.Observe(nil, dynamo.Control{0, 10}, 0.02)

	// (2 + 1) + (0 + 1) over two samples.
	if got := m.Value(); math.Abs(got-2) > 1e-12 {
		t.Errorf("Value() = %v, want 2", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}
