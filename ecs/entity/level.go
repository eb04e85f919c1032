package entity

import (
	"errors"

	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
	"github.com/milk9111/skul/level"
	"github.com/milk9111/skul/physics"
)

var ErrNoWorld = errors.New("entity: nil world")

// BuildLevel adds lvl's solids, bounds and moving platforms to pw and creates an
// entity for each of them plus one tagged with the level name.
func BuildLevel(w *ecs.World, pw *physics.World, lvl *level.Level) (ecs.Entity, error) {
	if w == nil || pw == nil {
		return 0, ErrNoWorld
	}
	if lvl == nil {
		return 0, errors.New("entity: nil level")
	}

	root := ecs.CreateEntity(w)
	if err := ecs.Add(w, root, component.LevelTagComponent.Kind(), &component.LevelTag{Name: lvl.Name}); err != nil {
		return 0, err
	}

	for _, r := range lvl.Solids {
		e := ecs.CreateEntity(w)
		solid := &component.Solid{X: r.X, Y: r.Y, W: r.W, H: r.H, Shape: pw.AddSolid(r.X, r.Y, r.W, r.H)}
		if err := ecs.Add(w, e, component.SolidComponent.Kind(), solid); err != nil {
			return 0, err
		}
	}
	pw.AddBounds(float64(lvl.Width), float64(lvl.Height))

	for _, p := range lvl.Platforms {
		plat := pw.AddPlatform(physics.PlatformSpec{
			X: p.X, Y: p.Y, Width: p.W, Height: p.H,
			DX: p.DX, DY: p.DY, Period: p.Period,
		})
		if plat == nil {
			continue
		}
		e := ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.MovingPlatformComponent.Kind(), &component.MovingPlatform{Name: p.Name, Platform: plat}); err != nil {
			return 0, err
		}
		x, y := plat.Position()
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1}); err != nil {
			return 0, err
		}
	}
	return root, nil
}
