package sim

import (
	"fmt"
	"math"

	"github.com/milk9111/skul/controller"
)

// Sample is the character after one frame. X and Y are the body centre in world
// tiles (y down); Height is the rise of the feet above the spawn point and VX, VY
// are y-up.
type Sample struct {
	Frame        int
	Time         float64
	X, Y         float64
	Height       float64
	VX, VY       float64
	Move         float64
	Jump         bool
	Grounded     bool
	TouchingWall bool
	WallSliding  bool
	Facing       int
	JumpsLeft    int
	Events       controller.Event
}

type Trace []Sample

// MaxHeight is the highest Height reached, or 0 for an empty trace.
func (t Trace) MaxHeight() float64 {
	if len(t) == 0 {
		return 0
	}
	best := math.Inf(-1)
	for _, s := range t {
		best = math.Max(best, s.Height)
	}
	return best
}

// Count returns the number of frames that raised ev.
func (t Trace) Count(ev controller.Event) int {
	n := 0
	for _, s := range t {
		if s.Events.Has(ev) {
			n++
		}
	}
	return n
}

// Columns lists the names accepted by Column.
var Columns = []string{"x", "y", "height", "vx", "vy", "move", "jumps"}

// Column extracts one numeric field by name.
func (t Trace) Column(name string) ([]float64, error) {
	var pick func(Sample) float64
	switch name {
	case "x":
		pick = func(s Sample) float64 { return s.X }
	case "y":
		pick = func(s Sample) float64 { return s.Y }
	case "height":
		pick = func(s Sample) float64 { return s.Height }
	case "vx":
		pick = func(s Sample) float64 { return s.VX }
	case "vy":
		pick = func(s Sample) float64 { return s.VY }
	case "move":
		pick = func(s Sample) float64 { return s.Move }
	case "jumps":
		pick = func(s Sample) float64 { return float64(s.JumpsLeft) }
	default:
		return nil, fmt.Errorf("sim: unknown column %q", name)
	}
	out := make([]float64, len(t))
	for i, s := range t {
		out[i] = pick(s)
	}
	return out, nil
}

// Every keeps every nth sample, always including the last.
func (t Trace) Every(n int) Trace {
	if n <= 1 || len(t) == 0 {
		return t
	}
	out := make(Trace, 0, len(t)/n+1)
	for i, s := range t {
		if i%n == 0 || i == len(t)-1 {
			out = append(out, s)
		}
	}
	return out
}
