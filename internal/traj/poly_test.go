package traj

import (
	"math"
	"testing"
)

func TestFitBoundary_Endpoints(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		duration float64
	}{
		{"unit", 0, 1.0, 1.0},
		{"long", 0, 2.5, 3.0},
		{"short hop", 0, 0.2, 0.5},
		{"negative", 0, -1.0, 1.0},
		{"offset start", 0.4, 1.9, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FitBoundary(tt.start, tt.end, tt.duration)
			if err != nil {
				t.Fatalf("FitBoundary failed: %v", err)
			}

			if got := p.Eval(0); math.Abs(got-tt.start) > 1e-9 {
				t.Errorf("p(0) = %v, want %v", got, tt.start)
			}
			if got := p.Eval(tt.duration); math.Abs(got-tt.end) > 1e-9 {
				t.Errorf("p(T) = %v, want %v", got, tt.end)
			}

			// velocity, acceleration and jerk vanish at both ends
			d := p
			for k := 1; k <= 3; k++ {
				d = d.Derivative()
				if got := d.Eval(0); math.Abs(got) > 1e-8 {
					t.Errorf("derivative %d at 0 = %v, want 0", k, got)
				}
				if got := d.Eval(tt.duration); math.Abs(got) > 1e-8 {
					t.Errorf("derivative %d at T = %v, want 0", k, got)
				}
			}
		})
	}
}

func TestFitBoundary_BadDuration(t *testing.T) {
	if _, err := FitBoundary(0, 1.0, 0); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := FitBoundary(0, 1.0, -1); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestPoly_DerivativeMatchesFiniteDifference(t *testing.T) {
	p, err := FitBoundary(0, 1.0, 1.0)
	if err != nil {
		t.Fatalf("FitBoundary failed: %v", err)
	}
	d := p.Derivative()

	const h = 1e-6
	for _, tm := range []float64{0.1, 0.25, 0.5, 0.9} {
		fd := (p.Eval(tm+h) - p.Eval(tm-h)) / (2 * h)
		if got := d.Eval(tm); math.Abs(got-fd) > 1e-5 {
			t.Errorf("p'(%v) = %v, finite diff %v", tm, got, fd)
		}
	}
}

func TestGenerate_GridAndAxis(t *testing.T) {
	ref, err := Generate(1.0, 1.0, 0.02, 3)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ref.Steps() != 51 {
		t.Errorf("steps = %d, want 51", ref.Steps())
	}
	if ref.Dims() != 3 {
		t.Errorf("dims = %d, want 3", ref.Dims())
	}

	// 3-D motion runs along y, the other axes stay zero
	last := ref.Pos[ref.Steps()-1]
	if math.Abs(last[1]-1.0) > 1e-9 {
		t.Errorf("final y = %v, want 1", last[1])
	}
	for _, row := range ref.Pos {
		if row[0] != 0 || row[2] != 0 {
			t.Errorf("off-axis motion: %v", row)
		}
	}

	// monotone translation along the axis
	for i := 1; i < ref.Steps(); i++ {
		if ref.Pos[i][1] < ref.Pos[i-1][1]-1e-12 {
			t.Errorf("position not monotone at step %d", i)
		}
	}
}

func TestGenerate_OneDimensional(t *testing.T) {
	ref, err := Generate(2.0, 1.0, 0.1, 1)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if ref.Steps() != 11 {
		t.Errorf("steps = %d, want 11", ref.Steps())
	}
	if math.Abs(ref.Pos[10][0]-2.0) > 1e-9 {
		t.Errorf("final position = %v, want 2", ref.Pos[10][0])
	}
	if math.Abs(ref.Vel[0][0]) > 1e-9 || math.Abs(ref.Vel[10][0]) > 1e-8 {
		t.Errorf("rest-to-rest violated: v0=%v vT=%v", ref.Vel[0][0], ref.Vel[10][0])
	}
}
