package metrics

import (
	"math"

	"github.com/san-kum/ilc/internal/dynamo"
)

// ControlEffort averages the absolute control magnitude per step. An
// optional per-channel scale normalizes channels with different natural
// magnitudes before they are summed.
type ControlEffort struct {
	name    string
	scale   []float64
	sum     float64
	samples int
}

func NewControlEffort(scale []float64) *ControlEffort {
	return &ControlEffort{
		name:  "control_effort",
		scale: scale,
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for i, val := range u {
		s := 1.0
		if i < len(c.scale) {
			s = c.scale[i]
		}
		c.sum += s * math.Abs(val)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
