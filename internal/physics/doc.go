// Package physics holds the pure math behind the plant models: small
// 3-vector helpers and the differential-flatness maps that turn a
// position trajectory and its derivatives into thrust-axis attitude,
// body rates and feedforward inputs.
//
// Everything here is a plain function on plain slices. No state, no
// allocation beyond the returned vectors, safe for concurrent use.
package physics
