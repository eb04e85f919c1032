package controller

import "strings"

// Input is one sample of the player's controls.
type Input struct {
	// Horizontal is the movement axis in [-1, 1].
	Horizontal float64
	// HorizontalPressed is true on the sample a direction was first pressed.
	HorizontalPressed bool
	JumpPressed       bool
	JumpHeld          bool
	JumpReleased      bool
}

// Contacts is what the ground and wall checks saw this tick.
type Contacts struct {
	Grounded     bool
	TouchingWall bool
}

// State is the per-character movement state. The zero value is not ready for use;
// start from NewState.
type State struct {
	Facing       int
	Grounded     bool
	TouchingWall bool
	WallSliding  bool
	Walking      bool

	JumpsLeft int
	MoveInput float64

	JumpTimer     float64
	TurnTimer     float64
	WallJumpTimer float64

	CanMove             bool
	CanFlip             bool
	CanNormalJump       bool
	CanWallJump         bool
	HasWallJumped       bool
	AttemptingJump      bool
	CheckJumpMultiplier bool
	LastWallJumpDir     int
}

// NewState returns a character facing right with a full set of jumps.
func NewState(t Tuning) State {
	return State{
		Facing:        1,
		JumpsLeft:     t.AmountOfJumps,
		CanMove:       true,
		CanFlip:       true,
		CanNormalJump: t.AmountOfJumps > 0,
	}
}

// Event flags what happened during a tick.
type Event uint16

const (
	EventJump Event = 1 << iota
	EventWallJump
	EventWallHop
	EventJumpCut
	EventWallJumpCancel
	EventJumpBuffered
	EventFlip
	EventTurnLock
)

var eventNames = []struct {
	ev   Event
	name string
}{
	{EventJump, "jump"},
	{EventWallJump, "wall_jump"},
	{EventWallHop, "wall_hop"},
	{EventJumpCut, "jump_cut"},
	{EventWallJumpCancel, "wall_jump_cancel"},
	{EventJumpBuffered, "jump_buffered"},
	{EventFlip, "flip"},
	{EventTurnLock, "turn_lock"},
}

func (e Event) Has(flag Event) bool {
	return e&flag != 0
}

// Each calls fn for every flag set in e, in declaration order.
func (e Event) Each(fn func(Event)) {
	for _, n := range eventNames {
		if e.Has(n.ev) {
			fn(n.ev)
		}
	}
}

func (e Event) String() string {
	if e == 0 {
		return ""
	}
	parts := make([]string, 0, 2)
	for _, n := range eventNames {
		if e.Has(n.ev) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// AnimParams mirrors the parameters an animation graph is driven by.
type AnimParams struct {
	Walking     bool
	Grounded    bool
	YVelocity   float64
	WallSliding bool
	Facing      int
}

// Command is what a tick asks the physics body to do. Hosts apply the velocity first,
// then the impulse, then the force.
type Command struct {
	SetVelocity bool
	Velocity    Vec2
	Impulse     Vec2
	Force       Vec2
	Flipped     bool
	Events      Event
	Anim        AnimParams
}
