package script

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/prefabs"
)

// runTimeout bounds a single evaluation so a runaway loop cannot stall a frame.
const runTimeout = 50 * time.Millisecond

// Sensor reports the character a script is steering.
type Sensor func() (controller.State, controller.Vec2)

// Driver is a controller.InputSource that evaluates a tengo script once per
// sample. Scripts read frame, time, grounded, touching_wall, wall_sliding, facing,
// vy and jumps_left, may keep data in the state map, and set move and jump.
type Driver struct {
	name     string
	compiled *tengo.Compiled
	sense    Sensor
	dt       float64
	state    *tengo.Map

	frame    int
	prevJump bool
	prevDir  int
	err      error
}

var _ controller.InputSource = (*Driver)(nil)

// New compiles src. dt is the frame time used for the script's time input.
func New(name string, src []byte, sense Sensor, dt float64) (*Driver, error) {
	d := &Driver{
		name:  name,
		sense: sense,
		dt:    dt,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	if err := d.Reload(src); err != nil {
		return nil, err
	}
	return d, nil
}

// Load compiles the named script from prefabs.
func Load(name string, sense Sensor, dt float64) (*Driver, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	return New(name, src, sense, dt)
}

// Reload swaps in a new script body, keeping the frame count and the state map.
func (d *Driver) Reload(src []byte) error {
	s := tengo.NewScript(src)
	_ = s.Add("frame", 0)
	_ = s.Add("time", 0.0)
	_ = s.Add("grounded", false)
	_ = s.Add("touching_wall", false)
	_ = s.Add("wall_sliding", false)
	_ = s.Add("facing", 1)
	_ = s.Add("vy", 0.0)
	_ = s.Add("jumps_left", 0)
	_ = s.Add("state", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return fmt.Errorf("script: compile %s: %w", d.name, err)
	}
	d.compiled = compiled
	d.err = nil
	return nil
}

func (d *Driver) Name() string { return d.name }

// Frame is the number of samples taken so far.
func (d *Driver) Frame() int { return d.frame }

// Err returns the first runtime error since the last Reload.
func (d *Driver) Err() error { return d.err }

// Sample runs the script for the next frame. A failing run yields neutral input.
func (d *Driver) Sample() controller.Input {
	frame := d.frame
	d.frame++

	var st controller.State
	var vel controller.Vec2
	if d.sense != nil {
		st, vel = d.sense()
	}

	move, jump, err := d.run(frame, st, vel)
	if err != nil {
		if d.err == nil {
			d.err = err
			log.Printf("script: %s frame %d: %v", d.name, frame, err)
		}
		move, jump = 0, false
	}

	dir := 0
	switch {
	case move > 0:
		dir = 1
	case move < 0:
		dir = -1
	}
	in := controller.Input{
		Horizontal:        move,
		HorizontalPressed: dir != 0 && dir != d.prevDir,
		JumpPressed:       jump && !d.prevJump,
		JumpHeld:          jump,
		JumpReleased:      !jump && d.prevJump,
	}
	d.prevDir = dir
	d.prevJump = jump
	return in
}

func (d *Driver) run(frame int, st controller.State, vel controller.Vec2) (float64, bool, error) {
	c := d.compiled
	if c == nil {
		return 0, false, fmt.Errorf("script: %s not compiled", d.name)
	}
	inputs := []struct {
		name  string
		value any
	}{
		{"frame", frame},
		{"time", float64(frame) * d.dt},
		{"grounded", st.Grounded},
		{"touching_wall", st.TouchingWall},
		{"wall_sliding", st.WallSliding},
		{"facing", st.Facing},
		{"vy", vel.Y},
		{"jumps_left", st.JumpsLeft},
		{"state", d.state},
	}
	for _, in := range inputs {
		// the compiler drops globals a script never reads
		if !c.IsDefined(in.name) {
			continue
		}
		if err := c.Set(in.name, in.value); err != nil {
			return 0, false, err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return 0, false, err
	}

	move := c.Get("move").Float()
	if math.IsNaN(move) {
		move = 0
	}
	move = math.Max(-1, math.Min(1, move))
	return move, c.Get("jump").Bool(), nil
}
