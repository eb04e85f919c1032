package system

import (
	"github.com/milk9111/skul/controller"
	"github.com/milk9111/skul/ecs"
	"github.com/milk9111/skul/ecs/component"
)

// ControllerEvent is the payload of ecs.EventController events.
type ControllerEvent struct {
	Entity ecs.Entity
	Events controller.Event
}

// PlayerControllerSystem runs the per-frame controller update for every player.
type PlayerControllerSystem struct {
	dt float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{dt: dt}
}

// SetFrameTime changes the dt passed to the controllers on the next update.
func (p *PlayerControllerSystem) SetFrameTime(dt float64) {
	if p != nil && dt > 0 {
		p.dt = dt
	}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input) {
		if player.Controller == nil {
			return
		}
		player.Controller.Update(input.Last, p.dt)
		flushEvents(w, e, player)
	})
}

// flushEvents moves the flags a controller raised into the world queue.
func flushEvents(w *ecs.World, e ecs.Entity, player *component.Player) {
	if player.Events == 0 {
		return
	}
	w.Events().Push(ecs.Event{
		Type: ecs.EventController,
		Data: ControllerEvent{Entity: e, Events: player.Events},
	})
	player.Events = 0
}
