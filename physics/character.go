package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/skul/controller"
)

// CharacterSpec describes a character body. Sizes are in tiles.
type CharacterSpec struct {
	Width        float64
	Height       float64
	Mass         float64
	GravityScale float64

	GroundCheckRadius float64
	WallCheckDistance float64
}

// Character is a fixed-rotation box body. It implements controller.Body and
// controller.Probe, flipping Y at the boundary, and reports velocities relative to
// whatever it stands on.
type Character struct {
	world *World
	body  *cp.Body
	shape *cp.Shape

	width, height float64
	groundRadius  float64
	wallDistance  float64

	ground *cp.Shape
}

// AddCharacter creates a character centred at (x, y).
func (w *World) AddCharacter(spec CharacterSpec, x, y float64) *Character {
	if w == nil {
		return nil
	}
	if spec.Width <= 0 {
		spec.Width = 0.8
	}
	if spec.Height <= 0 {
		spec.Height = 1.8
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}

	body := cp.NewBody(spec.Mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	if scale := spec.GravityScale; scale != 0 && scale != 1 {
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping float64, dt float64) {
			cp.BodyUpdateVelocity(b, gravity.Mult(scale), damping, dt)
		})
	}

	shape := cp.NewBox(body, spec.Width, spec.Height, 0.02)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeCharacter)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, categoryCharacter, categorySolid))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	c := &Character{
		world:        w,
		body:         body,
		shape:        shape,
		width:        spec.Width,
		height:       spec.Height,
		groundRadius: spec.GroundCheckRadius,
		wallDistance: spec.WallCheckDistance,
	}
	w.chars = append(w.chars, c)
	return c
}

// SetProbe changes the ground and wall check sizes.
func (c *Character) SetProbe(groundRadius, wallDistance float64) {
	if c == nil {
		return
	}
	c.groundRadius = math.Abs(groundRadius)
	c.wallDistance = math.Abs(wallDistance)
}

func (c *Character) Body() *cp.Body   { return c.body }
func (c *Character) Shape() *cp.Shape { return c.shape }

// Size returns the box width and height in tiles.
func (c *Character) Size() (float64, float64) {
	return c.width, c.height
}

// Position returns the body centre in world coordinates (y down).
func (c *Character) Position() (float64, float64) {
	p := c.body.Position()
	return p.X, p.Y
}

// Teleport moves the character to (x, y) and stops it.
func (c *Character) Teleport(x, y float64) {
	c.body.SetPosition(cp.Vector{X: x, Y: y})
	c.body.SetVelocity(0, 0)
	c.ground = nil
}

func (c *Character) groundVelocity() cp.Vector {
	if c.ground == nil || c.ground.Body() == nil {
		return cp.Vector{}
	}
	return c.ground.Body().Velocity()
}

// Velocity returns the y-up velocity relative to the ground body.
func (c *Character) Velocity() controller.Vec2 {
	v := c.body.Velocity().Sub(c.groundVelocity())
	return controller.Vec2{X: v.X, Y: -v.Y}
}

// SetVelocity sets a y-up velocity relative to the ground body.
func (c *Character) SetVelocity(v controller.Vec2) {
	g := c.groundVelocity()
	c.body.SetVelocityVector(cp.Vector{X: v.X + g.X, Y: -v.Y + g.Y})
}

func (c *Character) ApplyImpulse(impulse controller.Vec2) {
	c.body.ApplyImpulseAtLocalPoint(cp.Vector{X: impulse.X, Y: -impulse.Y}, cp.Vector{})
}

// ApplyForce applies a y-up force for the next step only.
func (c *Character) ApplyForce(force controller.Vec2) {
	c.body.ApplyForceAtLocalPoint(cp.Vector{X: force.X, Y: -force.Y}, cp.Vector{})
}

// Contacts runs the ground overlap at the feet and the wall ray along facing.
func (c *Character) Contacts(facing int) controller.Contacts {
	var out controller.Contacts
	if c == nil || c.world == nil {
		return out
	}
	space := c.world.space
	pos := c.body.Position()

	feet := cp.Vector{X: pos.X, Y: pos.Y + c.height/2}
	c.ground = nil
	if c.groundRadius > 0 {
		if info := space.PointQueryNearest(feet, c.groundRadius, solidFilter); info != nil && info.Shape != nil {
			out.Grounded = true
			c.ground = info.Shape
		}
	}

	if facing != 0 && c.wallDistance > 0 {
		dir := float64(facing)
		end := cp.Vector{X: pos.X + dir*(c.width/2+c.wallDistance), Y: pos.Y}
		if hit := space.SegmentQueryFirst(pos, end, 0, solidFilter); hit.Shape != nil {
			out.TouchingWall = true
		}
	}
	return out
}

// Ground returns the shape found under the feet by the last Contacts call.
func (c *Character) Ground() *cp.Shape {
	return c.ground
}
