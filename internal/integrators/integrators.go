// Package integrators provides fixed-step time integrators for the
// simulator. All integrators hold the control constant across a step.
package integrators

import (
	"fmt"

	"github.com/san-kum/ilc/internal/dynamo"
)

// New returns the integrator with the given name.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s (available: euler, rk4)", name)
	}
}

// Names lists the available integrator names.
func Names() []string {
	return []string{"euler", "rk4"}
}
