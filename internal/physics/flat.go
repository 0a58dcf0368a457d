package physics

import "math"

// Gravity is the gravitational acceleration used by every plant, m/s^2.
const Gravity = 9.81

// MinThrust is the smallest thrust-vector norm the flatness maps accept.
// Below it the desired acceleration nearly cancels gravity and the
// thrust axis is undefined.
const MinThrust = 1e-3

// ThrustAxis maps a desired acceleration to the body thrust axis and the
// mass-normalized thrust magnitude. Returns ok=false when the thrust
// vector is degenerate; the axis then falls back to world z.
func ThrustAxis(acc []float64) (zb []float64, thrust float64, ok bool) {
	q := []float64{acc[0], acc[1], acc[2] + Gravity}
	n := Norm3(q)
	if n < MinThrust {
		return []float64{0, 0, 1}, n, false
	}
	return Scale3(q, 1/n), n, true
}

// AxisRate returns the time derivative of the thrust axis given the
// desired jerk: the jerk component orthogonal to the axis, divided by
// the thrust.
func AxisRate(zb, jerk []float64, thrust float64) []float64 {
	along := Dot3(zb, jerk)
	return Scale3(Sub3(jerk, Scale3(zb, along)), 1/thrust)
}

// AngularVelocity returns the body angular velocity that rotates the
// thrust axis at the given rate, with zero yaw component.
func AngularVelocity(zb, zbDot []float64) []float64 {
	return Cross3(zb, zbDot)
}

// AngularAccelFF returns the feedforward angular acceleration for a
// snap-continuous trajectory.
func AngularAccelFF(zb, omega, jerk, snap []float64, thrust float64) []float64 {
	a := Scale3(Cross3(zb, snap), 1/thrust)
	b := Scale3(omega, 2*Dot3(zb, jerk)/thrust)
	return Sub3(a, b)
}

// ThrustSecond returns the second time derivative of the thrust
// magnitude for a snap-continuous trajectory.
func ThrustSecond(zb, zbDot, snap []float64, thrust float64) float64 {
	return thrust*Dot3(zbDot, zbDot) + Dot3(zb, snap)
}

// TiltAngle returns the pitch angle that aligns a planar vehicle's
// thrust with the desired acceleration. acc is [ax, az] in the
// vertical plane.
func TiltAngle(acc []float64) float64 {
	qx := acc[0]
	qz := acc[1] + Gravity
	return math.Atan2(-qx, qz)
}

// TiltRate returns the pitch rate matching TiltAngle along the
// trajectory. jerk is [jx, jz].
func TiltRate(acc, jerk []float64) float64 {
	qx := acc[0]
	qz := acc[1] + Gravity
	n2 := qx*qx + qz*qz
	return (-jerk[0]*qz + qx*jerk[1]) / n2
}

// TiltAccel returns the pitch angular acceleration matching TiltAngle
// along the trajectory.
func TiltAccel(acc, jerk, snap []float64) float64 {
	qx := acc[0]
	qz := acc[1] + Gravity
	n2 := qx*qx + qz*qz
	rate := (-jerk[0]*qz + qx*jerk[1]) / n2
	qdq := qx*jerk[0] + qz*jerk[1]
	return (-snap[0]*qz+qx*snap[1])/n2 - 2*qdq*rate/n2
}
