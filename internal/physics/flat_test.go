package physics

import (
	"math"
	"testing"
)

// analytic test trajectory with closed-form derivatives
func trajAt(t float64) (acc, jerk, snap []float64) {
	const a, b, c = 1.0, 0.5, 0.3
	acc = []float64{-a * math.Sin(t), -b * math.Cos(t), 2 * c}
	jerk = []float64{-a * math.Cos(t), b * math.Sin(t), 0}
	snap = []float64{a * math.Sin(t), b * math.Cos(t), 0}
	return
}

func TestThrustAxis_UnitNorm(t *testing.T) {
	tests := []struct {
		name string
		acc  []float64
	}{
		{"hover", []float64{0, 0, 0}},
		{"climb", []float64{0, 0, 3}},
		{"lateral", []float64{2, -1, 0.5}},
		{"aggressive", []float64{8, 8, -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zb, thrust, ok := ThrustAxis(tt.acc)
			if !ok {
				t.Fatal("unexpected degenerate thrust")
			}
			if math.Abs(Norm3(zb)-1) > 1e-12 {
				t.Errorf("axis norm = %v, want 1", Norm3(zb))
			}
			// thrust * axis must reconstruct acc + g
			q := []float64{tt.acc[0], tt.acc[1], tt.acc[2] + Gravity}
			back := Scale3(zb, thrust)
			for i := range q {
				if math.Abs(back[i]-q[i]) > 1e-10 {
					t.Errorf("axis %d: %v * %v != %v", i, thrust, zb[i], q[i])
				}
			}
		})
	}
}

func TestThrustAxis_Degenerate(t *testing.T) {
	// free fall cancels gravity exactly
	zb, thrust, ok := ThrustAxis([]float64{0, 0, -Gravity})
	if ok {
		t.Error("expected degenerate flag for free fall")
	}
	if zb[0] != 0 || zb[1] != 0 || zb[2] != 1 {
		t.Errorf("fallback axis = %v, want world z", zb)
	}
	if thrust > MinThrust {
		t.Errorf("thrust = %v, want below %v", thrust, MinThrust)
	}
}

func TestAngularVelocity_Orthogonal(t *testing.T) {
	acc, jerk, _ := trajAt(0.7)
	zb, thrust, _ := ThrustAxis(acc)
	zbDot := AxisRate(zb, jerk, thrust)
	omega := AngularVelocity(zb, zbDot)

	if d := Dot3(omega, zb); math.Abs(d) > 1e-12 {
		t.Errorf("omega . zb = %v, want 0", d)
	}
	if d := Dot3(zbDot, zb); math.Abs(d) > 1e-12 {
		t.Errorf("zbDot . zb = %v, want 0", d)
	}
}

func TestAxisRate_MatchesFiniteDifference(t *testing.T) {
	const t0, h = 0.7, 1e-5

	axisAt := func(tm float64) []float64 {
		acc, _, _ := trajAt(tm)
		zb, _, _ := ThrustAxis(acc)
		return zb
	}

	acc, jerk, _ := trajAt(t0)
	zb, thrust, _ := ThrustAxis(acc)
	got := AxisRate(zb, jerk, thrust)

	plus := axisAt(t0 + h)
	minus := axisAt(t0 - h)
	for i := 0; i < 3; i++ {
		fd := (plus[i] - minus[i]) / (2 * h)
		if math.Abs(got[i]-fd) > 1e-6 {
			t.Errorf("axis rate %d: got %v, finite diff %v", i, got[i], fd)
		}
	}
}

func TestAngularAccelFF_MatchesFiniteDifference(t *testing.T) {
	const t0, h = 0.7, 1e-4

	omegaAt := func(tm float64) []float64 {
		acc, jerk, _ := trajAt(tm)
		zb, thrust, _ := ThrustAxis(acc)
		return AngularVelocity(zb, AxisRate(zb, jerk, thrust))
	}

	acc, jerk, snap := trajAt(t0)
	zb, thrust, _ := ThrustAxis(acc)
	zbDot := AxisRate(zb, jerk, thrust)
	omega := AngularVelocity(zb, zbDot)
	got := AngularAccelFF(zb, omega, jerk, snap, thrust)

	plus := omegaAt(t0 + h)
	minus := omegaAt(t0 - h)
	for i := 0; i < 3; i++ {
		fd := (plus[i] - minus[i]) / (2 * h)
		if math.Abs(got[i]-fd) > 1e-5 {
			t.Errorf("angular accel %d: got %v, finite diff %v", i, got[i], fd)
		}
	}
}

func TestThrustSecond_MatchesFiniteDifference(t *testing.T) {
	const t0, h = 0.7, 1e-3

	thrustAt := func(tm float64) float64 {
		acc, _, _ := trajAt(tm)
		_, f, _ := ThrustAxis(acc)
		return f
	}

	acc, jerk, snap := trajAt(t0)
	zb, thrust, _ := ThrustAxis(acc)
	zbDot := AxisRate(zb, jerk, thrust)
	got := ThrustSecond(zb, zbDot, snap, thrust)

	fd := (thrustAt(t0+h) - 2*thrustAt(t0) + thrustAt(t0-h)) / (h * h)
	if math.Abs(got-fd) > 1e-4 {
		t.Errorf("thrust second derivative: got %v, finite diff %v", got, fd)
	}
}

func TestTiltAngle(t *testing.T) {
	if got := TiltAngle([]float64{0, 0}); math.Abs(got) > 1e-12 {
		t.Errorf("hover tilt = %v, want 0", got)
	}

	// accelerating along +x pitches negative
	if got := TiltAngle([]float64{1, 0}); got >= 0 {
		t.Errorf("forward tilt = %v, want negative", got)
	}

	const t0, h = 0.3, 1e-5
	accAt := func(tm float64) []float64 {
		return []float64{-math.Sin(tm), 0.6 * tm}
	}
	jerkAt := func(tm float64) []float64 {
		return []float64{-math.Cos(tm), 0.6}
	}

	got := TiltRate(accAt(t0), jerkAt(t0))
	fd := (TiltAngle(accAt(t0+h)) - TiltAngle(accAt(t0-h))) / (2 * h)
	if math.Abs(got-fd) > 1e-6 {
		t.Errorf("tilt rate: got %v, finite diff %v", got, fd)
	}
}

func TestTiltAccel_MatchesFiniteDifference(t *testing.T) {
	const t0, h = 0.3, 1e-4

	accAt := func(tm float64) []float64 {
		return []float64{-math.Sin(tm), 0.3 * tm * tm}
	}
	jerkAt := func(tm float64) []float64 {
		return []float64{-math.Cos(tm), 0.6 * tm}
	}
	snap := []float64{math.Sin(t0), 0.6}

	got := TiltAccel(accAt(t0), jerkAt(t0), snap)
	fd := (TiltRate(accAt(t0+h), jerkAt(t0+h)) - TiltRate(accAt(t0-h), jerkAt(t0-h))) / (2 * h)
	if math.Abs(got-fd) > 1e-5 {
		t.Errorf("tilt accel: got %v, finite diff %v", got, fd)
	}
}

func TestCross3(t *testing.T) {
	x := []float64{1, 0, 0}
	y := []float64{0, 1, 0}
	z := Cross3(x, y)
	if z[0] != 0 || z[1] != 0 || z[2] != 1 {
		t.Errorf("x cross y = %v, want z", z)
	}
}
