package component

import "github.com/milk9111/skul/controller"

// Player binds a movement controller to an entity. Events accumulates the flags
// raised since the event log last drained it.
type Player struct {
	Controller *controller.Controller
	Events     controller.Event
	SpawnX     float64
	SpawnY     float64
}

var PlayerComponent = NewComponent[Player]()
