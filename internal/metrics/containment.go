package metrics

import (
	"github.com/san-kum/simcore/internal/dynamo"
)

// Containment is the fraction of observed frames in which every body stayed
// within the frame's bounds, allowing each centre to overhang by its radius.
// Unbounded frames count as contained.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s *dynamo.Snapshot) {
	c.samples++
	if s.Bounds != nil && Escaped(s.Bodies, *s.Bounds) > 0 {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
