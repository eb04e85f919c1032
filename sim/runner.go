package sim

import (
	"errors"
	"fmt"
	"log"

	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/physics"
	"github.com/milk9111/skul/prefabs"
)

var ErrNoLevel = errors.New("sim: no level")

// InputFunc adapts a function to controller.InputSource.
type InputFunc func() controller.Input

func (f InputFunc) Sample() controller.Input { return f() }

// Config describes a headless run.
type Config struct {
	Level  *level.Level
	Player *prefabs.PlayerSpec
	// Tuning overrides the player's tuning when non-nil.
	Tuning *controller.Tuning

	FPS     float64
	FixedHz float64
	Gravity float64
}

// Runner owns a physics world, one character and its controller, and advances
// them frame by frame.
type Runner struct {
	cfg   Config
	world *physics.World
	char  *physics.Character
	ctrl  *controller.Controller
	clock *Clock
	input controller.InputSource

	frameDt float64
	frame   int
	time    float64
	spawnX  float64
	spawnY  float64
	events  controller.Event
}

func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Level == nil {
		return nil, ErrNoLevel
	}
	if cfg.Player == nil {
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			return nil, err
		}
		cfg.Player = spec
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.FixedHz <= 0 {
		cfg.FixedHz = 50
	}
	if cfg.Gravity == 0 {
		cfg.Gravity = physics.Gravity
	}

	tuning, err := cfg.Player.ControllerTuning()
	if err != nil {
		return nil, err
	}
	if cfg.Tuning != nil {
		if err := cfg.Tuning.Validate(); err != nil {
			return nil, fmt.Errorf("sim: %w", err)
		}
		tuning = cfg.Tuning.Normalized()
	}

	r := &Runner{
		cfg:     cfg,
		world:   physics.NewWorld(cfg.Gravity),
		clock:   NewClock(cfg.FixedHz, 5),
		frameDt: 1 / cfg.FPS,
	}
	cfg.Level.Build(r.world)

	r.spawnX, r.spawnY = SpawnCenter(cfg.Level, cfg.Player)
	r.char = r.world.AddCharacter(physics.CharacterSpec{
		Width:             cfg.Player.Collider.Width,
		Height:            cfg.Player.Collider.Height,
		Mass:              cfg.Player.Mass,
		GravityScale:      cfg.Player.GravityScale,
		GroundCheckRadius: tuning.GroundCheckRadius,
		WallCheckDistance: tuning.WallCheckDistance,
	}, r.spawnX, r.spawnY)
	r.ctrl = controller.New(tuning, r.char, r.char, controller.OnEvent(func(e controller.Event) {
		r.events |= e
	}))
	return r, nil
}

// SpawnCenter returns the body centre that puts the player's feet just above the
// level's spawn point.
func SpawnCenter(l *level.Level, p *prefabs.PlayerSpec) (float64, float64) {
	h := 1.8
	if p != nil && p.Collider.Height > 0 {
		h = p.Collider.Height
	}
	return l.SpawnX, l.SpawnY - h/2 - 0.05
}

func (r *Runner) World() *physics.World             { return r.world }
func (r *Runner) Character() *physics.Character     { return r.char }
func (r *Runner) Controller() *controller.Controller { return r.ctrl }
func (r *Runner) Frame() int                         { return r.frame }
func (r *Runner) FrameDt() float64                   { return r.frameDt }

// SetInput replaces the input source. A nil source gives neutral input.
func (r *Runner) SetInput(src controller.InputSource) {
	r.input = src
}

// SetTuning applies new tuning to the controller and the character's probes.
func (r *Runner) SetTuning(t controller.Tuning) {
	r.ctrl.SetTuning(t)
	t = r.ctrl.Tuning()
	r.char.SetProbe(t.GroundCheckRadius, t.WallCheckDistance)
}

// Observe reports the controller state and the character's velocity. It has the
// shape script drivers expect for their sensor.
func (r *Runner) Observe() (controller.State, controller.Vec2) {
	return r.ctrl.State(), r.char.Velocity()
}

// Respawn puts the character back at the spawn point with a fresh state.
func (r *Runner) Respawn() {
	r.char.Teleport(r.spawnX, r.spawnY)
	r.ctrl.Reset()
	r.clock.Reset()
	log.Printf("sim: respawn at (%.2f, %.2f)", r.spawnX, r.spawnY)
}

// Step runs one frame: frame update, then every due fixed step followed by a
// physics step. dt <= 0 uses the configured frame time.
func (r *Runner) Step(dt float64) Sample {
	if dt <= 0 {
		dt = r.frameDt
	}
	r.events = 0

	var in controller.Input
	if r.input != nil {
		in = r.input.Sample()
	}
	r.ctrl.Update(in, dt)

	steps := r.clock.Advance(dt)
	for i := 0; i < steps; i++ {
		r.ctrl.FixedUpdate()
		r.world.Step(r.clock.Step)
	}

	s := r.sample(in)
	r.frame++
	r.time += dt
	return s
}

// Run steps frames times at the configured frame rate.
func (r *Runner) Run(frames int) Trace {
	out := make(Trace, 0, frames)
	for i := 0; i < frames; i++ {
		out = append(out, r.Step(0))
	}
	return out
}

func (r *Runner) sample(in controller.Input) Sample {
	st := r.ctrl.State()
	x, y := r.char.Position()
	v := r.char.Velocity()
	return Sample{
		Frame:        r.frame,
		Time:         r.time,
		X:            x,
		Y:            y,
		Height:       r.spawnY - y,
		VX:           v.X,
		VY:           v.Y,
		Move:         in.Horizontal,
		Jump:         in.JumpHeld,
		Grounded:     st.Grounded,
		TouchingWall: st.TouchingWall,
		WallSliding:  st.WallSliding,
		Facing:       st.Facing,
		JumpsLeft:    st.JumpsLeft,
		Events:       r.events,
	}
}
