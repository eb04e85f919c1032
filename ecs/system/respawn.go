package system

import (
	"log"

	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
)

// RespawnSystem handles respawn requests and queues one for any player that falls
// below killY.
type RespawnSystem struct {
	killY float64
}

// NewRespawnSystem returns a respawn system. killY <= 0 disables the fall check.
func NewRespawnSystem(killY float64) *RespawnSystem {
	return &RespawnSystem{killY: killY}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	if s.killY > 0 {
		ecs.ForEach2(w, component.PlayerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Player, t *component.Transform) {
			if t.Y > s.killY && !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
				_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{Reason: "fell"})
			}
		})
	}

	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, req *component.RespawnRequest) {
		defer ecs.Remove(w, e, component.RespawnRequestComponent.Kind())

		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			return
		}
		if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.Body != nil {
			c.Body.Teleport(player.SpawnX, player.SpawnY)
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = player.SpawnX, player.SpawnY
		}
		player.Controller.Reset()
		player.Events = 0

		w.Events().Push(ecs.Event{Type: ecs.EventRespawn, Data: e})
		log.Printf("respawn: %s (%s) at (%.2f, %.2f)", e, req.Reason, player.SpawnX, player.SpawnY)
	})
}
