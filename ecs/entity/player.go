package entity

import (
	"fmt"

	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/physics"
	"github.com/milk9111/skul/prefabs"
	"github.com/milk9111/skul/sim"
)

// BuildPlayer creates the player entity at lvl's spawn point. A nil spec loads
// player.yaml; a nil src leaves the player standing still.
func BuildPlayer(w *ecs.World, pw *physics.World, lvl *level.Level, spec *prefabs.PlayerSpec, src controller.InputSource) (ecs.Entity, error) {
	if w == nil || pw == nil {
		return 0, ErrNoWorld
	}
	if spec == nil {
		var err error
		if spec, err = prefabs.LoadPlayerSpec(); err != nil {
			return 0, fmt.Errorf("player: %w", err)
		}
	}
	tuning, err := spec.ControllerTuning()
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}

	x, y := 0.0, 0.0
	if lvl != nil {
		x, y = sim.SpawnCenter(lvl, spec)
	}
	body := pw.AddCharacter(physics.CharacterSpec{
		Width:             spec.Collider.Width,
		Height:            spec.Collider.Height,
		Mass:              spec.Mass,
		GravityScale:      spec.GravityScale,
		GroundCheckRadius: tuning.GroundCheckRadius,
		WallCheckDistance: tuning.WallCheckDistance,
	}, x, y)

	e := ecs.CreateEntity(w)
	player := &component.Player{SpawnX: x, SpawnY: y}
	anim := component.NewAnimator()
	player.Controller = controller.New(tuning, body, body,
		controller.WithAnimator(anim),
		controller.OnEvent(func(ev controller.Event) { player.Events |= ev }),
	)

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), player); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{Source: src}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), &component.Character{Body: body}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), anim); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1}); err != nil {
		return 0, err
	}
	return e, nil
}

// SetTuning swaps the tuning of the player e and refreshes its probe sizes.
func SetTuning(w *ecs.World, e ecs.Entity, t controller.Tuning) error {
	player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || player.Controller == nil {
		return fmt.Errorf("player: set tuning on %s: not a player", e)
	}
	player.Controller.SetTuning(t)
	t = player.Controller.Tuning()
	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.Body != nil {
		c.Body.SetProbe(t.GroundCheckRadius, t.WallCheckDistance)
	}
	return nil
}
