package system

import (
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"github.com/milk9111/skul/ecs/entity"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/physics"
	"github.com/milk9111/skul/prefabs"
	"github.com/milk9111/skul/sim"
)

// SceneConfig describes the world a Scene builds.
type SceneConfig struct {
	Level  *level.Level
	Player *prefabs.PlayerSpec
	Input  controller.InputSource

	FPS     float64
	FixedHz float64
	Debug   bool
}

// Scene wires one level and one player into an ECS world with a frame scheduler,
// a fixed scheduler driven by a sim.Clock and a post-physics scheduler.
type Scene struct {
	world   *ecs.World
	physics *physics.World
	player  ecs.Entity
	clock   *sim.Clock

	frame *ecs.Scheduler
	fixed *ecs.Scheduler
	post  *ecs.Scheduler

	controllers *PlayerControllerSystem
	animation   *AnimationSystem
	events      *EventLogSystem
}

func NewScene(cfg SceneConfig) (*Scene, error) {
	if cfg.Level == nil {
		return nil, sim.ErrNoLevel
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	if cfg.FixedHz <= 0 {
		cfg.FixedHz = 50
	}

	s := &Scene{
		world:   ecs.NewWorld(),
		physics: physics.NewWorld(physics.Gravity),
		clock:   sim.NewClock(cfg.FixedHz, 5),
	}
	if _, err := entity.BuildLevel(s.world, s.physics, cfg.Level); err != nil {
		return nil, err
	}
	player, err := entity.BuildPlayer(s.world, s.physics, cfg.Level, cfg.Player, cfg.Input)
	if err != nil {
		return nil, err
	}
	s.player = player

	frameDt := 1 / cfg.FPS
	s.controllers = NewPlayerControllerSystem(frameDt)
	s.animation = NewAnimationSystem(frameDt)
	s.events = NewEventLogSystem(cfg.Debug, 0)

	s.frame = ecs.NewScheduler(NewInputSystem(), s.controllers)
	s.fixed = ecs.NewScheduler(NewPhysicsSystem(s.physics, s.clock.Step))
	s.post = ecs.NewScheduler(
		NewRespawnSystem(float64(cfg.Level.Height)+4),
		s.animation,
		s.events,
	)
	return s, nil
}

// Update advances one frame of dt seconds and returns the fixed steps it ran.
func (s *Scene) Update(dt float64) int {
	s.controllers.SetFrameTime(dt)
	s.animation.dt = dt
	s.frame.Update(s.world)
	steps := s.clock.Advance(dt)
	for i := 0; i < steps; i++ {
		s.fixed.Update(s.world)
	}
	s.post.Update(s.world)
	return steps
}

func (s *Scene) World() *ecs.World       { return s.world }
func (s *Scene) Physics() *physics.World { return s.physics }
func (s *Scene) Player() ecs.Entity      { return s.player }
func (s *Scene) Clock() *sim.Clock       { return s.clock }
func (s *Scene) RecentEvents() []string  { return s.events.Recent() }

// Controller returns the player's controller, or nil once the player is gone.
func (s *Scene) Controller() *controller.Controller {
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return nil
	}
	return p.Controller
}

// Observe reports the player's controller state and velocity, in the shape
// script drivers take as their sensor.
func (s *Scene) Observe() (controller.State, controller.Vec2) {
	var vel controller.Vec2
	if c, ok := ecs.Get(s.world, s.player, component.CharacterComponent.Kind()); ok && c.Body != nil {
		vel = c.Body.Velocity()
	}
	return s.Controller().State(), vel
}

// Respawn queues a respawn for the player; it happens in the next post pass.
func (s *Scene) Respawn() {
	_ = ecs.Add(s.world, s.player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Reason: "manual"})
}

func (s *Scene) SetTuning(t controller.Tuning) error {
	return entity.SetTuning(s.world, s.player, t)
}

// SetInput swaps the player's input source.
func (s *Scene) SetInput(src controller.InputSource) {
	if in, ok := ecs.Get(s.world, s.player, component.InputComponent.Kind()); ok {
		in.Source = src
	}
}
