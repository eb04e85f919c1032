package system

import (
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"github.com/milk9111/skul/physics"
)

// PhysicsSystem is the fixed-step pass: controller fixed updates, then the space
// step, then transforms are copied back from the bodies.
type PhysicsSystem struct {
	world *physics.World
	step  float64
}

func NewPhysicsSystem(world *physics.World, step float64) *PhysicsSystem {
	return &PhysicsSystem{world: world, step: step}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.world == nil {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.Controller == nil {
			return
		}
		player.Controller.FixedUpdate()
		flushEvents(w, e, player)
	})

	ps.world.Step(ps.step)

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Character, t *component.Transform) {
		if c.Body == nil {
			return
		}
		t.X, t.Y = c.Body.Position()
	})
	ecs.ForEach2(w, component.MovingPlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.MovingPlatform, t *component.Transform) {
		if p.Platform == nil {
			return
		}
		t.X, t.Y = p.Platform.Position()
	})
}
