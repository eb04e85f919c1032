package component

// RespawnRequest asks the respawn system to reset an entity to its spawn point.
type RespawnRequest struct {
	Reason string
}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
