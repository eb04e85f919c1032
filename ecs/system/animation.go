package system

import (
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
)

type AnimationSystem struct {
	dt float64
}

func NewAnimationSystem(dt float64) *AnimationSystem {
	return &AnimationSystem{dt: dt}
}

// Update picks a clip from the parameters the controller wrote and mirrors the
// facing into the transform scale.
func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(_ ecs.Entity, anim *component.Animator) {
		clip := ClipFor(anim)
		if clip != anim.Clip {
			anim.Clip = clip
			anim.ClipTime = 0
			return
		}
		anim.ClipTime += a.dt
	})
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, player *component.Player, t *component.Transform) {
		if player.Controller == nil {
			return
		}
		t.ScaleX = float64(player.Controller.State().Facing)
	})
}

// ClipFor maps animation parameters to a clip name.
func ClipFor(anim *component.Animator) string {
	switch {
	case anim.Bools[controller.ParamWallSliding]:
		return component.ClipWallSlide
	case !anim.Bools[controller.ParamGrounded] && anim.Floats[controller.ParamYVelocity] > 0:
		return component.ClipJump
	case !anim.Bools[controller.ParamGrounded]:
		return component.ClipFall
	case anim.Bools[controller.ParamWalking]:
		return component.ClipRun
	default:
		return component.ClipIdle
	}
}
