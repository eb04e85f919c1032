package sim

// Clock turns variable frame times into a whole number of fixed steps.
type Clock struct {
	Step     float64
	MaxSteps int

	acc float64
}

// NewClock returns a clock stepping at hz with at most maxSteps per Advance.
func NewClock(hz float64, maxSteps int) *Clock {
	if hz <= 0 {
		hz = 50
	}
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Clock{Step: 1 / hz, MaxSteps: maxSteps}
}

// Advance adds dt and returns how many fixed steps are due. Time beyond
// MaxSteps is dropped rather than carried into later frames.
func (c *Clock) Advance(dt float64) int {
	if dt <= 0 || c.Step <= 0 {
		return 0
	}
	c.acc += dt
	n := 0
	// the small slack keeps 1/50 steps from drifting a frame late on float error
	for c.acc >= c.Step-1e-9 && n < c.MaxSteps {
		c.acc -= c.Step
		n++
	}
	if n == c.MaxSteps && c.acc >= c.Step {
		c.acc = 0
	}
	if c.acc < 0 {
		c.acc = 0
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator.
func (c *Clock) Alpha() float64 {
	if c.Step <= 0 {
		return 0
	}
	return c.acc / c.Step
}

func (c *Clock) Reset() {
	c.acc = 0
}
