// Package ilc runs the iterative learning control trial loop: simulate
// the disturbed plant, measure the lifted output error, linearize the
// nominal model along the trajectory, and solve a damped least squares
// system for the control correction applied to the next trial.
package ilc
