package physics

import (
	"log"

	"github.com/jakecoffman/cp"
)

// Gravity is the default downward acceleration in tiles per second squared.
const Gravity = 9.81 * 4

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypePlatform
	collisionTypeCharacter
)

const (
	categorySolid uint = 1 << iota
	categoryCharacter
)

// solidFilter is used by probes so a character never detects its own shape.
var solidFilter = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, categorySolid)

// World owns the Chipmunk space. Coordinates are tiles with y pointing down.
type World struct {
	space     *cp.Space
	platforms []*Platform
	chars     []*Character
}

// NewWorld creates an empty space with the given downward gravity.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// AddSolid adds a static box with its top-left corner at (x, y).
func (w *World) AddSolid(x, y, width, height float64) *cp.Shape {
	if w == nil || width <= 0 || height <= 0 {
		return nil
	}
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(w.space.StaticBody, bb, 0)
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
	w.space.AddShape(shape)
	return shape
}

// AddBounds closes the rectangle (0,0)-(width,height) with segments.
func (w *World) AddBounds(width, height float64) {
	if w == nil || width <= 0 || height <= 0 {
		return
	}
	const thickness = 0.05
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: width, Y: 0}},
		{a: cp.Vector{X: 0, Y: height}, b: cp.Vector{X: width, Y: height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: height}},
		{a: cp.Vector{X: width, Y: 0}, b: cp.Vector{X: width, Y: height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categorySolid, cp.ALL_CATEGORIES))
		w.space.AddShape(shape)
	}
}

// Platforms returns the moving platforms in creation order.
func (w *World) Platforms() []*Platform {
	if w == nil {
		return nil
	}
	return w.platforms
}

// Step advances platforms and then the space by dt seconds.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil || dt <= 0 {
		return
	}
	for _, p := range w.platforms {
		p.update(dt)
	}
	w.space.Step(dt)
}

// Remove takes a character out of the space.
func (w *World) Remove(c *Character) {
	if w == nil || c == nil {
		return
	}
	for i, ch := range w.chars {
		if ch == c {
			w.chars = append(w.chars[:i], w.chars[i+1:]...)
			w.space.RemoveShape(c.shape)
			w.space.RemoveBody(c.body)
			log.Printf("physics: removed character")
			return
		}
	}
}
