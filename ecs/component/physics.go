package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/skul/physics"
)

// Character holds the cp body a Player drives.
type Character struct {
	Body *physics.Character
}

var CharacterComponent = NewComponent[Character]()

// MovingPlatform is a kinematic platform stepped by the physics world.
type MovingPlatform struct {
	Name     string
	Platform *physics.Platform
}

var MovingPlatformComponent = NewComponent[MovingPlatform]()

// Solid is a static collision box in tile units.
type Solid struct {
	X, Y, W, H float64
	Shape      *cp.Shape
}

var SolidComponent = NewComponent[Solid]()
